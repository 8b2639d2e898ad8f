package analytics

import (
	"testing"
	"time"

	"github.com/fundlens/backend/internal/contracts"
)

func fp(v float64) *float64 { return &v }

func TestRollingTotal(t *testing.T) {
	tests := []struct {
		name        string
		values      []*float64
		temporality Temporality
		want        *float64
	}{
		{
			name:        "sum skips gaps",
			values:      []*float64{fp(10), nil, fp(20)},
			temporality: TemporalitySum,
			want:        fp(30),
		},
		{
			name:        "latest takes last non-nil",
			values:      []*float64{fp(10), nil, fp(20)},
			temporality: TemporalityLatest,
			want:        fp(20),
		},
		{
			name: "latest scans past trailing gap",
			// A gap at the end must not reset the series to zero
			values:      []*float64{fp(10), fp(20), nil},
			temporality: TemporalityLatest,
			want:        fp(20),
		},
		{
			name:        "all nil sums to nil",
			values:      []*float64{nil, nil},
			temporality: TemporalitySum,
			want:        nil,
		},
		{
			name:        "all nil latest is nil",
			values:      []*float64{nil, nil},
			temporality: TemporalityLatest,
			want:        nil,
		},
		{
			name:        "empty input",
			values:      nil,
			temporality: TemporalitySum,
			want:        nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RollingTotal(tt.values, tt.temporality)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("got %v, want nil", *got)
			case tt.want != nil && got == nil:
				t.Errorf("got nil, want %v", *tt.want)
			case tt.want != nil && got != nil && *got != *tt.want:
				t.Errorf("got %v, want %v", *got, *tt.want)
			}
		})
	}
}

func TestPeriodKey(t *testing.T) {
	tests := []struct {
		start      time.Time
		periodType contracts.PeriodType
		want       string
	}{
		{time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), contracts.PeriodMonthly, "2024-03"},
		{time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC), contracts.PeriodMonthly, "2024-11"},
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), contracts.PeriodQuarterly, "2024-Q1"},
		{time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), contracts.PeriodQuarterly, "2024-Q1"},
		{time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), contracts.PeriodQuarterly, "2024-Q2"},
		{time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), contracts.PeriodQuarterly, "2024-Q4"},
		{time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), contracts.PeriodAnnual, "2024"},
	}

	for _, tt := range tests {
		if got := PeriodKey(tt.start, tt.periodType); got != tt.want {
			t.Errorf("PeriodKey(%s, %s) = %q, want %q", tt.start.Format("2006-01-02"), tt.periodType, got, tt.want)
		}
	}
}

func TestPeriodKey_LexicographicOrderIsChronological(t *testing.T) {
	// Zero-padding makes string order match time order
	earlier := PeriodKey(time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), contracts.PeriodMonthly)
	later := PeriodKey(time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), contracts.PeriodMonthly)

	if !(earlier < later) {
		t.Errorf("expected %q < %q", earlier, later)
	}
}

func TestParsePeriodKey_RoundTrip(t *testing.T) {
	dates := []time.Time{
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
	}
	periodTypes := []contracts.PeriodType{contracts.PeriodMonthly, contracts.PeriodQuarterly, contracts.PeriodAnnual}

	for _, d := range dates {
		for _, p := range periodTypes {
			key := PeriodKey(d, p)
			start, parsedType, ok := ParsePeriodKey(key)
			if !ok {
				t.Fatalf("ParsePeriodKey(%q) failed", key)
			}
			if parsedType != p {
				t.Errorf("ParsePeriodKey(%q) type = %s, want %s", key, parsedType, p)
			}
			if got := PeriodKey(start, parsedType); got != key {
				t.Errorf("round trip of %q produced %q", key, got)
			}
		}
	}
}

func TestParsePeriodKey_Invalid(t *testing.T) {
	for _, key := range []string{"", "banana", "2024-Q5", "2024-13", "24"} {
		if _, _, ok := ParsePeriodKey(key); ok {
			t.Errorf("ParsePeriodKey(%q) should fail", key)
		}
	}
}

func TestPeriodLabel(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"2024-03", "Mar 2024"},
		{"2024-11", "Nov 2024"},
		{"2024-Q1", "Q1 2024"},
		{"2024", "2024"},
		{"garbage", "garbage"},
	}

	for _, tt := range tests {
		if got := PeriodLabel(tt.key); got != tt.want {
			t.Errorf("PeriodLabel(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestBucketSamples(t *testing.T) {
	catalog := DefaultCatalog()

	samples := []*contracts.MetricSample{
		{CompanyID: "a", MetricName: "revenue", PeriodType: contracts.PeriodQuarterly,
			PeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Value: 100},
		{CompanyID: "b", MetricName: "revenue", PeriodType: contracts.PeriodQuarterly,
			PeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Value: 200},
		{CompanyID: "a", MetricName: "revenue", PeriodType: contracts.PeriodQuarterly,
			PeriodStart: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Value: 150},
		{CompanyID: "a", MetricName: "gross margin", PeriodType: contracts.PeriodQuarterly,
			PeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Value: 0.65},
	}

	buckets := BucketSamples(catalog, samples)

	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}

	// Chronological order
	if buckets[0].Key != "2024-Q1" || buckets[1].Key != "2024-Q2" {
		t.Errorf("bucket order = %q, %q", buckets[0].Key, buckets[1].Key)
	}
	if buckets[0].Label != "Q1 2024" {
		t.Errorf("label = %q, want Q1 2024", buckets[0].Label)
	}

	q1Revenue := buckets[0].Aggregates["revenue"]
	if q1Revenue.Sum == nil || *q1Revenue.Sum != 300 {
		t.Errorf("Q1 revenue sum = %v, want 300", q1Revenue.Sum)
	}

	q1Margin := buckets[0].Aggregates["gross margin"]
	if q1Margin.Sum != nil {
		t.Errorf("margin sum should stay nil, got %v", *q1Margin.Sum)
	}
	if q1Margin.Count != 1 {
		t.Errorf("margin count = %d, want 1", q1Margin.Count)
	}
}
