package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fundlens/backend/internal/contracts"
)

// MetricRepository implements contracts.MetricRepository on Postgres.
// The raw_value column is jsonb and stays in its stored shape; the
// analytics extractor normalizes it downstream.
type MetricRepository struct {
	pool *pgxpool.Pool
}

// NewMetricRepository creates a new metric repository
func NewMetricRepository(pool *pgxpool.Pool) *MetricRepository {
	return &MetricRepository{pool: pool}
}

// GetByCompany returns all rows for one company at the given cadence,
// oldest first.
func (r *MetricRepository) GetByCompany(ctx context.Context, companyID string, periodType contracts.PeriodType) ([]*contracts.MetricRow, error) {
	query := `
		SELECT company_id, metric_name, period_type, period_start, period_end, raw_value
		FROM portfolio.metric_rows
		WHERE company_id = $1 AND period_type = $2
		ORDER BY period_start ASC, metric_name ASC
	`

	rows, err := r.pool.Query(ctx, query, companyID, string(periodType))
	if err != nil {
		return nil, fmt.Errorf("get metrics for company %s: %w", companyID, err)
	}
	defer rows.Close()

	return scanMetricRows(rows)
}

// GetLatestPerCompany returns, for every company, the most recent row
// per metric name at the given cadence. This feeds benchmark grouping.
func (r *MetricRepository) GetLatestPerCompany(ctx context.Context, periodType contracts.PeriodType) ([]*contracts.MetricRow, error) {
	query := `
		SELECT DISTINCT ON (company_id, metric_name)
		       company_id, metric_name, period_type, period_start, period_end, raw_value
		FROM portfolio.metric_rows
		WHERE period_type = $1
		ORDER BY company_id, metric_name, period_start DESC
	`

	rows, err := r.pool.Query(ctx, query, string(periodType))
	if err != nil {
		return nil, fmt.Errorf("get latest metrics per company: %w", err)
	}
	defer rows.Close()

	return scanMetricRows(rows)
}

// GetLatestPeriod returns all rows belonging to the most recent period
// at the given cadence, across companies.
func (r *MetricRepository) GetLatestPeriod(ctx context.Context, periodType contracts.PeriodType) ([]*contracts.MetricRow, error) {
	query := `
		SELECT company_id, metric_name, period_type, period_start, period_end, raw_value
		FROM portfolio.metric_rows
		WHERE period_type = $1
		  AND period_start = (
		      SELECT MAX(period_start) FROM portfolio.metric_rows WHERE period_type = $1
		  )
		ORDER BY company_id, metric_name
	`

	rows, err := r.pool.Query(ctx, query, string(periodType))
	if err != nil {
		return nil, fmt.Errorf("get latest period metrics: %w", err)
	}
	defer rows.Close()

	return scanMetricRows(rows)
}

func scanMetricRows(rows pgx.Rows) ([]*contracts.MetricRow, error) {
	var result []*contracts.MetricRow
	for rows.Next() {
		var (
			m           contracts.MetricRow
			periodType  string
			periodStart time.Time
			periodEnd   time.Time
			rawValue    []byte
		)

		if err := rows.Scan(&m.CompanyID, &m.MetricName, &periodType, &periodStart, &periodEnd, &rawValue); err != nil {
			return nil, fmt.Errorf("scan metric row: %w", err)
		}

		m.PeriodType = contracts.PeriodType(periodType)
		m.PeriodStart = periodStart
		m.PeriodEnd = periodEnd

		// RawValue decoding is total: malformed jsonb becomes
		// RawValueInvalid and the extractor skips it later.
		if err := json.Unmarshal(rawValue, &m.Value); err != nil {
			m.Value = contracts.RawValue{Kind: contracts.RawValueInvalid}
		}

		result = append(result, &m)
	}

	return result, rows.Err()
}
