package contracts

import "time"

// BenchmarkRow is one published percentile distribution. Industry and
// Stage are nil when the row aggregates across all industries/stages,
// giving four granularity levels per metric that coexist as separate
// rows. At most one row exists per (metric, period type, industry,
// stage) tuple; writers upsert on that key.
type BenchmarkRow struct {
	MetricName   string     `json:"metric_name"`
	PeriodType   PeriodType `json:"period_type"`
	Industry     *string    `json:"industry"`
	Stage        *string    `json:"stage"`
	P25          float64    `json:"p25"`
	P50          float64    `json:"p50"`
	P75          float64    `json:"p75"`
	P90          float64    `json:"p90"`
	SampleSize   int        `json:"sample_size"`
	CalculatedAt time.Time  `json:"calculated_at"`
}

// GroupKey returns the logical identity of the row, with empty strings
// standing in for nil industry/stage.
func (b *BenchmarkRow) GroupKey() string {
	industry := ""
	if b.Industry != nil {
		industry = *b.Industry
	}
	stage := ""
	if b.Stage != nil {
		stage = *b.Stage
	}
	return b.MetricName + "|" + string(b.PeriodType) + "|" + industry + "|" + stage
}
