package insight

import (
	"context"
	"fmt"
	"sort"

	"github.com/fundlens/backend/internal/analytics"
	"github.com/fundlens/backend/internal/contracts"
	"github.com/fundlens/backend/pkg/logger"
)

// Service turns raw stored metric rows into response structures: it
// extracts values, classifies metrics, aggregates across companies and
// rolls series up into period buckets. All computation delegates to
// the pure analytics functions; the service adds fetching and shaping.
type Service struct {
	companies contracts.CompanyRepository
	metrics   contracts.MetricRepository
	catalog   *analytics.Catalog
	logger    *logger.Logger
}

// NewService creates a new insight service
func NewService(
	companies contracts.CompanyRepository,
	metrics contracts.MetricRepository,
	catalog *analytics.Catalog,
	log *logger.Logger,
) *Service {
	return &Service{
		companies: companies,
		metrics:   metrics,
		catalog:   catalog,
		logger:    log,
	}
}

// MetricSummary pairs the aggregate with the advisory classification.
type MetricSummary struct {
	Aggregate      contracts.AggregatedMetric `json:"aggregate"`
	Classification analytics.Classification   `json:"classification"`
}

// PortfolioSummary is the cross-company view of the latest period.
type PortfolioSummary struct {
	PeriodType contracts.PeriodType     `json:"period_type"`
	PeriodKey  string                   `json:"period_key"`
	Label      string                   `json:"label"`
	Companies  int                      `json:"companies"`
	Metrics    map[string]MetricSummary `json:"metrics"`
}

// PortfolioSummary aggregates every metric across companies for the
// most recent stored period at the given cadence.
func (s *Service) PortfolioSummary(ctx context.Context, periodType contracts.PeriodType) (*PortfolioSummary, error) {
	rows, err := s.metrics.GetLatestPeriod(ctx, periodType)
	if err != nil {
		return nil, fmt.Errorf("fetch latest period: %w", err)
	}

	summary := &PortfolioSummary{
		PeriodType: periodType,
		Metrics:    make(map[string]MetricSummary),
	}

	if len(rows) == 0 {
		return summary, nil
	}

	summary.PeriodKey = analytics.PeriodKey(rows[0].PeriodStart, periodType)
	summary.Label = analytics.PeriodLabel(summary.PeriodKey)

	valuesByMetric := make(map[string][]float64)
	companies := make(map[string]struct{})
	skipped := 0

	for _, row := range rows {
		value, ok := analytics.ExtractValue(row.Value)
		if !ok {
			skipped++
			continue
		}
		valuesByMetric[row.MetricName] = append(valuesByMetric[row.MetricName], value)
		companies[row.CompanyID] = struct{}{}
	}

	summary.Companies = len(companies)

	for metric, values := range valuesByMetric {
		summary.Metrics[metric] = MetricSummary{
			Aggregate:      analytics.Aggregate(s.catalog, metric, values),
			Classification: analytics.ClassifyWithConfidence(s.catalog, metric),
		}
	}

	if skipped > 0 {
		s.logger.WithFields(map[string]interface{}{
			"period_type": string(periodType),
			"skipped":     skipped,
		}).Warn("Skipped unparseable metric values")
	}

	return summary, nil
}

// SeriesPoint is one period in a company metric series. Value is nil
// for periods the company did not report; Growth is nil for the first
// point and across gaps or zero baselines; Index is nil until a
// non-zero base period exists.
type SeriesPoint struct {
	PeriodKey string   `json:"period_key"`
	Label     string   `json:"label"`
	Value     *float64 `json:"value"`
	Growth    *float64 `json:"growth"`
	Index     *float64 `json:"index"`
}

// CompanySeries is the per-company rollup view.
type CompanySeries struct {
	CompanyID  string                   `json:"company_id"`
	PeriodType contracts.PeriodType     `json:"period_type"`
	Metrics    map[string][]SeriesPoint `json:"metrics"`
}

// CompanyMetrics builds, per metric, the chronological period series
// for one company with rolling totals, period-over-period growth and
// an index normalized to the first reported period (base = 100).
// An optional metric name narrows the result to one series.
func (s *Service) CompanyMetrics(ctx context.Context, companyID string, periodType contracts.PeriodType, metricName string) (*CompanySeries, error) {
	if _, err := s.companies.GetByID(ctx, companyID); err != nil {
		return nil, fmt.Errorf("lookup company: %w", err)
	}

	rows, err := s.metrics.GetByCompany(ctx, companyID, periodType)
	if err != nil {
		return nil, fmt.Errorf("fetch company metrics: %w", err)
	}

	// Extract into per-metric, per-period slots
	type slotMap map[string][]float64 // period key -> values within period
	byMetric := make(map[string]slotMap)
	periodKeys := make(map[string]struct{})

	for _, row := range rows {
		if metricName != "" && row.MetricName != metricName {
			continue
		}
		value, ok := analytics.ExtractValue(row.Value)
		if !ok {
			continue
		}

		key := analytics.PeriodKey(row.PeriodStart, periodType)
		periodKeys[key] = struct{}{}

		if byMetric[row.MetricName] == nil {
			byMetric[row.MetricName] = make(slotMap)
		}
		byMetric[row.MetricName][key] = append(byMetric[row.MetricName][key], value)
	}

	// Zero-padded keys sort chronologically
	orderedKeys := make([]string, 0, len(periodKeys))
	for key := range periodKeys {
		orderedKeys = append(orderedKeys, key)
	}
	sort.Strings(orderedKeys)

	series := &CompanySeries{
		CompanyID:  companyID,
		PeriodType: periodType,
		Metrics:    make(map[string][]SeriesPoint, len(byMetric)),
	}

	for metric, slots := range byMetric {
		temporality := analytics.Classify(s.catalog, metric)
		series.Metrics[metric] = buildSeries(orderedKeys, slots, temporality)
	}

	return series, nil
}

// buildSeries collapses each period's values to one rolling total and
// decorates the series with growth and index columns.
func buildSeries(orderedKeys []string, slots map[string][]float64, temporality analytics.Temporality) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(orderedKeys))

	var prev *float64
	var base *float64

	for _, key := range orderedKeys {
		var value *float64
		if values, ok := slots[key]; ok && len(values) > 0 {
			ptrs := make([]*float64, len(values))
			for i := range values {
				ptrs[i] = &values[i]
			}
			value = analytics.RollingTotal(ptrs, temporality)
		}

		point := SeriesPoint{
			PeriodKey: key,
			Label:     analytics.PeriodLabel(key),
			Value:     value,
		}

		if value != nil {
			if prev != nil {
				point.Growth = analytics.GrowthRate(*value, *prev)
			}
			if base == nil && *value != 0 {
				base = value
			}
			if base != nil {
				idx := analytics.NormalizeToIndex(*value, *base)
				point.Index = &idx
			}
			prev = value
		}

		points = append(points, point)
	}

	return points
}
