package contracts

import "time"

// PeriodType identifies the reporting cadence of a metric row.
type PeriodType string

const (
	PeriodMonthly   PeriodType = "monthly"
	PeriodQuarterly PeriodType = "quarterly"
	PeriodAnnual    PeriodType = "annual"
)

// Valid reports whether the period type is one of the known cadences.
func (p PeriodType) Valid() bool {
	switch p {
	case PeriodMonthly, PeriodQuarterly, PeriodAnnual:
		return true
	}
	return false
}

// Company is a portfolio company. Industry and Stage feed benchmark
// grouping; either may be empty when the company is unclassified.
type Company struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry,omitempty"`
	Stage    string `json:"stage,omitempty"`
}

// MetricRow is a raw metric record as fetched from storage. Value is
// kept in its stored shape; the extractor normalizes it downstream.
type MetricRow struct {
	CompanyID   string     `json:"company_id"`
	MetricName  string     `json:"metric_name"`
	PeriodType  PeriodType `json:"period_type"`
	PeriodStart time.Time  `json:"period_start"`
	PeriodEnd   time.Time  `json:"period_end"`
	Value       RawValue   `json:"value"`
}

// MetricSample is a metric observation after successful extraction.
// Immutable once created.
type MetricSample struct {
	CompanyID   string     `json:"company_id"`
	MetricName  string     `json:"metric_name"`
	PeriodType  PeriodType `json:"period_type"`
	PeriodStart time.Time  `json:"period_start"`
	PeriodEnd   time.Time  `json:"period_end"`
	Value       float64    `json:"value"`
}

// AggregatedMetric holds summary statistics for one metric across a
// set of companies. Sum is nil when the metric is not summable across
// companies; that nil is a deliberate signal and must survive
// serialization as JSON null, never collapse to 0.
type AggregatedMetric struct {
	Sum     *float64 `json:"sum"`
	Average float64  `json:"average"`
	Median  float64  `json:"median"`
	Min     float64  `json:"min"`
	Max     float64  `json:"max"`
	Count   int      `json:"count"`
}

// PeriodBucket groups aggregates for one reporting period. Keys are
// zero-padded (2024-03, 2024-Q1, 2024) so lexicographic order is
// chronological order.
type PeriodBucket struct {
	Key        string                      `json:"period_key"`
	Label      string                      `json:"label"`
	Aggregates map[string]AggregatedMetric `json:"aggregates"`
}
