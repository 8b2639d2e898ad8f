package analytics

import (
	"sort"

	"github.com/fundlens/backend/internal/contracts"
)

// Aggregate computes summary statistics for one metric across a set of
// companies. Empty input returns a zeroed structure with Count 0 and a
// nil Sum rather than an error. Sum stays nil for any metric outside
// the summable catalog even when every value is numeric: summing a
// percentage across companies is never meaningful.
func Aggregate(catalog *Catalog, metricName string, values []float64) contracts.AggregatedMetric {
	if len(values) == 0 {
		return contracts.AggregatedMetric{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var total float64
	for _, v := range values {
		total += v
	}

	agg := contracts.AggregatedMetric{
		Average: total / float64(len(values)),
		Median:  median(sorted),
		Min:     sorted[0],
		Max:     sorted[len(sorted)-1],
		Count:   len(values),
	}

	if catalog.IsSummable(metricName) {
		agg.Sum = &total
	}

	return agg
}

// median expects a sorted slice and applies the standard even/odd
// midpoint rule.
func median(sorted []float64) float64 {
	n := len(sorted)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
