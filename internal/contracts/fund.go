package contracts

import "time"

// Investment is a fund position in a portfolio company. Used only for
// ratio math; amounts are non-negative by construction.
type Investment struct {
	FundID         string  `json:"fund_id"`
	CompanyID      string  `json:"company_id"`
	InvestedAmount float64 `json:"invested_amount"`
	CurrentValue   float64 `json:"current_value"`
	RealizedValue  float64 `json:"realized_value"`
}

// CashFlow is a dated, signed fund cash flow. Negative amounts are
// outflows (capital calls, investments); positive amounts are inflows
// (distributions, residual value).
type CashFlow struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// FundPerformance carries the computed fund multiples. Each ratio is
// nil when it could not be computed (no investments, zero paid-in
// capital, or a non-convergent IRR).
type FundPerformance struct {
	FundID string   `json:"fund_id"`
	TVPI   *float64 `json:"tvpi"`
	DPI    *float64 `json:"dpi"`
	RVPI   *float64 `json:"rvpi"`
	MOIC   *float64 `json:"moic"`
	IRR    *float64 `json:"irr"`
}
