package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fundlens/backend/internal/contracts"
)

// InvestmentRepository implements contracts.InvestmentRepository.
type InvestmentRepository struct {
	pool *pgxpool.Pool
}

// NewInvestmentRepository creates a new investment repository
func NewInvestmentRepository(pool *pgxpool.Pool) *InvestmentRepository {
	return &InvestmentRepository{pool: pool}
}

// GetByFund returns all investments for one fund.
func (r *InvestmentRepository) GetByFund(ctx context.Context, fundID string) ([]*contracts.Investment, error) {
	query := `
		SELECT fund_id, company_id,
		       COALESCE(invested_amount, 0),
		       COALESCE(current_value, 0),
		       COALESCE(realized_value, 0)
		FROM portfolio.investments
		WHERE fund_id = $1
	`

	rows, err := r.pool.Query(ctx, query, fundID)
	if err != nil {
		return nil, fmt.Errorf("get investments for fund %s: %w", fundID, err)
	}
	defer rows.Close()

	var investments []*contracts.Investment
	for rows.Next() {
		var inv contracts.Investment
		if err := rows.Scan(&inv.FundID, &inv.CompanyID, &inv.InvestedAmount, &inv.CurrentValue, &inv.RealizedValue); err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		investments = append(investments, &inv)
	}

	return investments, rows.Err()
}

// CashFlowRepository implements contracts.CashFlowRepository.
type CashFlowRepository struct {
	pool *pgxpool.Pool
}

// NewCashFlowRepository creates a new cash flow repository
func NewCashFlowRepository(pool *pgxpool.Pool) *CashFlowRepository {
	return &CashFlowRepository{pool: pool}
}

// GetByFund returns flows oldest first. Sign encodes direction:
// negative is an outflow, positive an inflow.
func (r *CashFlowRepository) GetByFund(ctx context.Context, fundID string) ([]*contracts.CashFlow, error) {
	query := `
		SELECT flow_date, amount
		FROM portfolio.cash_flows
		WHERE fund_id = $1
		ORDER BY flow_date ASC
	`

	rows, err := r.pool.Query(ctx, query, fundID)
	if err != nil {
		return nil, fmt.Errorf("get cash flows for fund %s: %w", fundID, err)
	}
	defer rows.Close()

	var flows []*contracts.CashFlow
	for rows.Next() {
		var f contracts.CashFlow
		if err := rows.Scan(&f.Date, &f.Amount); err != nil {
			return nil, fmt.Errorf("scan cash flow: %w", err)
		}
		flows = append(flows, &f)
	}

	return flows, rows.Err()
}
