package benchmark

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fundlens/backend/internal/analytics"
	"github.com/fundlens/backend/internal/contracts"
	"github.com/fundlens/backend/pkg/config"
	"github.com/fundlens/backend/pkg/logger"
)

// Calculator recomputes cross-portfolio percentile benchmarks. The
// computation is a pure function of the latest stored metric values,
// so a re-run with unchanged data produces identical rows and the
// idempotent upsert makes the whole pipeline safely re-runnable.
type Calculator struct {
	companies  contracts.CompanyRepository
	metrics    contracts.MetricRepository
	benchmarks contracts.BenchmarkRepository
	catalog    *analytics.Catalog
	cfg        config.BenchmarkConfig
	logger     *logger.Logger
}

// NewCalculator creates a new benchmark calculator
func NewCalculator(
	companies contracts.CompanyRepository,
	metrics contracts.MetricRepository,
	benchmarks contracts.BenchmarkRepository,
	catalog *analytics.Catalog,
	cfg config.BenchmarkConfig,
	log *logger.Logger,
) *Calculator {
	return &Calculator{
		companies:  companies,
		metrics:    metrics,
		benchmarks: benchmarks,
		catalog:    catalog,
		cfg:        cfg,
		logger:     log,
	}
}

// group is one benchmark population under construction.
type group struct {
	metric   string
	industry *string
	stage    *string
	values   []float64
}

// RecomputeAll recomputes benchmarks for every reporting cadence.
// Returns the total number of rows published.
func (c *Calculator) RecomputeAll(ctx context.Context) (int, error) {
	total := 0
	for _, periodType := range []contracts.PeriodType{
		contracts.PeriodMonthly,
		contracts.PeriodQuarterly,
		contracts.PeriodAnnual,
	} {
		n, err := c.Recompute(ctx, periodType)
		if err != nil {
			return total, fmt.Errorf("recompute %s benchmarks: %w", periodType, err)
		}
		total += n
	}
	return total, nil
}

// Recompute rebuilds all benchmark rows for one cadence. Every
// company's most recent value per metric contributes to four groups:
// (industry, stage), (industry, all), (all, stage) and (all, all).
// Percentiles run independently per group; groups below the
// sample-size floor are discarded, not published.
func (c *Calculator) Recompute(ctx context.Context, periodType contracts.PeriodType) (int, error) {
	start := time.Now()

	companies, err := c.companies.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list companies: %w", err)
	}

	companyByID := make(map[string]*contracts.Company, len(companies))
	for _, company := range companies {
		companyByID[company.ID] = company
	}

	rows, err := c.metrics.GetLatestPerCompany(ctx, periodType)
	if err != nil {
		return 0, fmt.Errorf("fetch latest metrics: %w", err)
	}

	groups := make(map[groupID]*group)
	skipped := 0

	for _, row := range rows {
		value, ok := analytics.ExtractValue(row.Value)
		if !ok {
			skipped++
			continue
		}

		company, found := companyByID[row.CompanyID]
		if !found {
			skipped++
			continue
		}

		for _, target := range groupTargets(company) {
			id := newGroupID(row.MetricName, target)
			g, exists := groups[id]
			if !exists {
				g = &group{metric: row.MetricName, industry: target.industry, stage: target.stage}
				groups[id] = g
			}
			g.values = append(g.values, value)
		}
	}

	calculatedAt := time.Now().UTC()
	var published []*contracts.BenchmarkRow
	discarded := 0

	// Deterministic iteration keeps logs and upsert order stable
	ids := make([]groupID, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a].less(ids[b]) })

	for _, id := range ids {
		g := groups[id]

		if len(g.values) < c.cfg.MinSampleSize {
			discarded++
			continue
		}

		percentiles := analytics.CalculatePercentiles(g.values)
		if percentiles == nil {
			discarded++
			continue
		}

		published = append(published, &contracts.BenchmarkRow{
			MetricName:   g.metric,
			PeriodType:   periodType,
			Industry:     g.industry,
			Stage:        g.stage,
			P25:          percentiles.P25,
			P50:          percentiles.P50,
			P75:          percentiles.P75,
			P90:          percentiles.P90,
			SampleSize:   len(g.values),
			CalculatedAt: calculatedAt,
		})
	}

	if err := c.upsertChunked(ctx, published); err != nil {
		return 0, err
	}

	c.logger.WithFields(map[string]interface{}{
		"period_type": string(periodType),
		"published":   len(published),
		"discarded":   discarded,
		"skipped":     skipped,
		"duration":    time.Since(start),
	}).Info("Benchmark recomputation completed")

	return len(published), nil
}

// upsertChunked writes rows in fixed-size batches.
func (c *Calculator) upsertChunked(ctx context.Context, rows []*contracts.BenchmarkRow) error {
	chunkSize := c.cfg.UpsertChunkSize
	if chunkSize <= 0 {
		chunkSize = 50
	}

	for start := 0; start < len(rows); start += chunkSize {
		end := start + chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := c.benchmarks.UpsertBatch(ctx, rows[start:end]); err != nil {
			return fmt.Errorf("upsert benchmark chunk: %w", err)
		}
	}

	return nil
}

// groupTarget is one of the four granularity levels a value lands in.
type groupTarget struct {
	industry *string
	stage    *string
}

// groupTargets expands a company into its benchmark groups. Companies
// without an industry or stage only contribute to the levels that do
// not slice on the missing dimension.
func groupTargets(company *contracts.Company) []groupTarget {
	targets := []groupTarget{{industry: nil, stage: nil}}

	var industry, stage *string
	if company.Industry != "" {
		v := company.Industry
		industry = &v
	}
	if company.Stage != "" {
		v := company.Stage
		stage = &v
	}

	if industry != nil {
		targets = append(targets, groupTarget{industry: industry, stage: nil})
	}
	if stage != nil {
		targets = append(targets, groupTarget{industry: nil, stage: stage})
	}
	if industry != nil && stage != nil {
		targets = append(targets, groupTarget{industry: industry, stage: stage})
	}

	return targets
}

// groupID is the comparable map key for a group. Sliced flags keep an
// unsliced dimension distinct from a dimension value that happens to
// be empty, and a struct key cannot collide on separator bytes the way
// a joined string would when a dimension value contains the separator.
type groupID struct {
	metric     string
	industry   string
	stage      string
	byIndustry bool
	byStage    bool
}

func newGroupID(metric string, target groupTarget) groupID {
	id := groupID{metric: metric}
	if target.industry != nil {
		id.byIndustry = true
		id.industry = *target.industry
	}
	if target.stage != nil {
		id.byStage = true
		id.stage = *target.stage
	}
	return id
}

func (id groupID) less(other groupID) bool {
	if id.metric != other.metric {
		return id.metric < other.metric
	}
	if id.byIndustry != other.byIndustry {
		return !id.byIndustry
	}
	if id.industry != other.industry {
		return id.industry < other.industry
	}
	if id.byStage != other.byStage {
		return !id.byStage
	}
	return id.stage < other.stage
}
