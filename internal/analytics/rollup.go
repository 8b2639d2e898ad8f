package analytics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fundlens/backend/internal/contracts"
)

// RollingTotal reduces a chronological (oldest-first) series of
// per-period values to one number. Sum metrics add every non-nil
// entry; latest metrics take the last non-nil entry, scanning from the
// end, so a gap in the middle of the series is never treated as a
// reset to zero. All-nil input returns nil.
func RollingTotal(values []*float64, temporality Temporality) *float64 {
	if temporality == TemporalitySum {
		var total float64
		seen := false
		for _, v := range values {
			if v == nil {
				continue
			}
			total += *v
			seen = true
		}
		if !seen {
			return nil
		}
		return &total
	}

	for i := len(values) - 1; i >= 0; i-- {
		if values[i] != nil {
			v := *values[i]
			return &v
		}
	}
	return nil
}

// PeriodKey derives the bucket key for a period start. Keys are
// zero-padded so lexicographic order is chronological order:
// monthly 2024-03, quarterly 2024-Q1, annual 2024.
func PeriodKey(start time.Time, periodType contracts.PeriodType) string {
	switch periodType {
	case contracts.PeriodMonthly:
		return fmt.Sprintf("%04d-%02d", start.Year(), int(start.Month()))
	case contracts.PeriodQuarterly:
		quarter := (int(start.Month())-1)/3 + 1
		return fmt.Sprintf("%04d-Q%d", start.Year(), quarter)
	default:
		return fmt.Sprintf("%04d", start.Year())
	}
}

// ParsePeriodKey recovers the period start and type from a key the
// deriver produced. Returns false for anything else, so
// PeriodKey(ParsePeriodKey(k)) == k holds for all valid keys.
func ParsePeriodKey(key string) (time.Time, contracts.PeriodType, bool) {
	switch {
	case strings.Contains(key, "-Q"):
		parts := strings.SplitN(key, "-Q", 2)
		year, err1 := strconv.Atoi(parts[0])
		quarter, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || quarter < 1 || quarter > 4 {
			return time.Time{}, "", false
		}
		month := time.Month((quarter-1)*3 + 1)
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), contracts.PeriodQuarterly, true

	case strings.Contains(key, "-"):
		parts := strings.SplitN(key, "-", 2)
		year, err1 := strconv.Atoi(parts[0])
		month, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || month < 1 || month > 12 {
			return time.Time{}, "", false
		}
		return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), contracts.PeriodMonthly, true

	default:
		year, err := strconv.Atoi(key)
		if err != nil || len(key) != 4 {
			return time.Time{}, "", false
		}
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), contracts.PeriodAnnual, true
	}
}

// PeriodLabel formats a period key for display: 2024-03 becomes
// "Mar 2024", 2024-Q1 becomes "Q1 2024", 2024 stays "2024".
// Unparseable keys are returned unchanged.
func PeriodLabel(key string) string {
	start, periodType, ok := ParsePeriodKey(key)
	if !ok {
		return key
	}

	switch periodType {
	case contracts.PeriodMonthly:
		return fmt.Sprintf("%s %d", start.Month().String()[:3], start.Year())
	case contracts.PeriodQuarterly:
		quarter := (int(start.Month())-1)/3 + 1
		return fmt.Sprintf("Q%d %d", quarter, start.Year())
	default:
		return fmt.Sprintf("%d", start.Year())
	}
}

// BucketSamples groups extracted samples into ordered period buckets
// and aggregates each metric within its bucket. Buckets come back in
// chronological order, which is lexicographic order on the keys.
func BucketSamples(catalog *Catalog, samples []*contracts.MetricSample) []contracts.PeriodBucket {
	type bucketValues map[string][]float64

	grouped := make(map[string]bucketValues)
	for _, s := range samples {
		key := PeriodKey(s.PeriodStart, s.PeriodType)
		if grouped[key] == nil {
			grouped[key] = make(bucketValues)
		}
		grouped[key][s.MetricName] = append(grouped[key][s.MetricName], s.Value)
	}

	keys := make([]string, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	buckets := make([]contracts.PeriodBucket, 0, len(keys))
	for _, key := range keys {
		aggregates := make(map[string]contracts.AggregatedMetric, len(grouped[key]))
		for metric, values := range grouped[key] {
			aggregates[metric] = Aggregate(catalog, metric, values)
		}
		buckets = append(buckets, contracts.PeriodBucket{
			Key:        key,
			Label:      PeriodLabel(key),
			Aggregates: aggregates,
		})
	}

	return buckets
}
