package contracts

import (
	"context"
)

// Repository interfaces are defined here; implementations live in
// internal/store. The analytics engine itself never touches these: it
// receives already-fetched rows and returns computed structures.

// CompanyRepository manages portfolio companies.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*Company, error)
	List(ctx context.Context) ([]*Company, error)
}

// MetricRepository manages raw metric rows.
type MetricRepository interface {
	// GetByCompany returns all rows for one company at the given cadence,
	// oldest first.
	GetByCompany(ctx context.Context, companyID string, periodType PeriodType) ([]*MetricRow, error)

	// GetLatestPerCompany returns, for every company, the most recent row
	// per metric name at the given cadence. Feeds benchmark grouping.
	GetLatestPerCompany(ctx context.Context, periodType PeriodType) ([]*MetricRow, error)

	// GetLatestPeriod returns all rows belonging to the most recent
	// period at the given cadence, across companies.
	GetLatestPeriod(ctx context.Context, periodType PeriodType) ([]*MetricRow, error)
}

// InvestmentRepository manages fund investments.
type InvestmentRepository interface {
	GetByFund(ctx context.Context, fundID string) ([]*Investment, error)
}

// CashFlowRepository manages fund cash flows.
type CashFlowRepository interface {
	// GetByFund returns flows oldest first.
	GetByFund(ctx context.Context, fundID string) ([]*CashFlow, error)
}

// BenchmarkRepository persists computed benchmark rows.
type BenchmarkRepository interface {
	// UpsertBatch writes rows idempotently, keyed by
	// (metric_name, period_type, industry, stage).
	UpsertBatch(ctx context.Context, rows []*BenchmarkRow) error

	// Find returns stored rows matching the filter. Nil industry/stage
	// select the across-all rows, not "any".
	Find(ctx context.Context, metric string, periodType PeriodType, industry, stage *string) ([]*BenchmarkRow, error)
}
