package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fundlens/backend/internal/contracts"
)

// BenchmarkRepository implements contracts.BenchmarkRepository.
// Rows are keyed by (metric_name, period_type, industry, stage) where
// NULL industry/stage means "across all"; the unique index coalesces
// NULLs to '' so the four granularity levels upsert independently.
type BenchmarkRepository struct {
	pool *pgxpool.Pool
}

// NewBenchmarkRepository creates a new benchmark repository
func NewBenchmarkRepository(pool *pgxpool.Pool) *BenchmarkRepository {
	return &BenchmarkRepository{pool: pool}
}

// UpsertBatch writes rows idempotently in a single database batch.
// Re-running a recomputation with identical inputs leaves the table
// unchanged apart from calculated_at.
func (r *BenchmarkRepository) UpsertBatch(ctx context.Context, benchmarkRows []*contracts.BenchmarkRow) error {
	if len(benchmarkRows) == 0 {
		return nil
	}

	query := `
		INSERT INTO portfolio.benchmarks (
			metric_name, period_type, industry, stage,
			p25, p50, p75, p90, sample_size, calculated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (metric_name, period_type, COALESCE(industry, ''), COALESCE(stage, ''))
		DO UPDATE SET
			p25 = EXCLUDED.p25,
			p50 = EXCLUDED.p50,
			p75 = EXCLUDED.p75,
			p90 = EXCLUDED.p90,
			sample_size = EXCLUDED.sample_size,
			calculated_at = EXCLUDED.calculated_at
	`

	batch := &pgx.Batch{}
	for _, row := range benchmarkRows {
		batch.Queue(query,
			row.MetricName, string(row.PeriodType), row.Industry, row.Stage,
			row.P25, row.P50, row.P75, row.P90, row.SampleSize, row.CalculatedAt,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range benchmarkRows {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("upsert benchmark row: %w", err)
		}
	}

	return nil
}

// Find returns stored rows matching the filter. A nil industry/stage
// selects the across-all rows, not "any value".
func (r *BenchmarkRepository) Find(ctx context.Context, metric string, periodType contracts.PeriodType, industry, stage *string) ([]*contracts.BenchmarkRow, error) {
	var (
		conditions []string
		args       []interface{}
	)

	conditions = append(conditions, fmt.Sprintf("metric_name = $%d", len(args)+1))
	args = append(args, metric)

	conditions = append(conditions, fmt.Sprintf("period_type = $%d", len(args)+1))
	args = append(args, string(periodType))

	if industry != nil {
		conditions = append(conditions, fmt.Sprintf("industry = $%d", len(args)+1))
		args = append(args, *industry)
	} else {
		conditions = append(conditions, "industry IS NULL")
	}

	if stage != nil {
		conditions = append(conditions, fmt.Sprintf("stage = $%d", len(args)+1))
		args = append(args, *stage)
	} else {
		conditions = append(conditions, "stage IS NULL")
	}

	query := fmt.Sprintf(`
		SELECT metric_name, period_type, industry, stage,
		       p25, p50, p75, p90, sample_size, calculated_at
		FROM portfolio.benchmarks
		WHERE %s
	`, strings.Join(conditions, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find benchmarks: %w", err)
	}
	defer rows.Close()

	var result []*contracts.BenchmarkRow
	for rows.Next() {
		var (
			b          contracts.BenchmarkRow
			periodType string
		)
		if err := rows.Scan(&b.MetricName, &periodType, &b.Industry, &b.Stage,
			&b.P25, &b.P50, &b.P75, &b.P90, &b.SampleSize, &b.CalculatedAt); err != nil {
			return nil, fmt.Errorf("scan benchmark row: %w", err)
		}
		b.PeriodType = contracts.PeriodType(periodType)
		result = append(result, &b)
	}

	return result, rows.Err()
}
