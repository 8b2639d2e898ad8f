package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fundlens/backend/internal/contracts"
)

// CompanyRepository implements contracts.CompanyRepository on Postgres.
type CompanyRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

// GetByID retrieves one company.
func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*contracts.Company, error) {
	query := `
		SELECT id, name, COALESCE(industry, ''), COALESCE(stage, '')
		FROM portfolio.companies
		WHERE id = $1
	`

	var c contracts.Company
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Industry, &c.Stage)
	if err != nil {
		return nil, fmt.Errorf("get company %s: %w", id, err)
	}
	return &c, nil
}

// List retrieves all portfolio companies.
func (r *CompanyRepository) List(ctx context.Context) ([]*contracts.Company, error) {
	query := `
		SELECT id, name, COALESCE(industry, ''), COALESCE(stage, '')
		FROM portfolio.companies
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var companies []*contracts.Company
	for rows.Next() {
		var c contracts.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Industry, &c.Stage); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, &c)
	}

	return companies, rows.Err()
}
