package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundlens/backend/internal/contracts"
)

type fakeInvestmentRepo struct {
	investments []*contracts.Investment
}

func (f *fakeInvestmentRepo) GetByFund(ctx context.Context, fundID string) ([]*contracts.Investment, error) {
	var matched []*contracts.Investment
	for _, inv := range f.investments {
		if inv.FundID == fundID {
			matched = append(matched, inv)
		}
	}
	return matched, nil
}

type fakeCashFlowRepo struct {
	flows []*contracts.CashFlow
}

func (f *fakeCashFlowRepo) GetByFund(ctx context.Context, fundID string) ([]*contracts.CashFlow, error) {
	return f.flows, nil
}

func performanceRequest(t *testing.T, h *FundHandler, fundID string) *httptest.ResponseRecorder {
	t.Helper()

	router := mux.NewRouter()
	router.HandleFunc("/api/funds/{id}/performance", h.GetPerformance).Methods("GET")

	req := httptest.NewRequest(http.MethodGet, "/api/funds/"+fundID+"/performance", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetPerformance_ComputesMultiples(t *testing.T) {
	investments := &fakeInvestmentRepo{
		investments: []*contracts.Investment{
			{FundID: "f1", CompanyID: "c1", InvestedAmount: 1000, CurrentValue: 1500, RealizedValue: 500},
			{FundID: "f1", CompanyID: "c2", InvestedAmount: 1000, CurrentValue: 500, RealizedValue: 0},
		},
	}
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	flows := &fakeCashFlowRepo{
		flows: []*contracts.CashFlow{
			{Date: t0, Amount: -2000},
			{Date: t0.AddDate(3, 0, 0), Amount: 2500},
		},
	}

	h := NewFundHandler(investments, flows, handlerLogger(t))
	rec := performanceRequest(t, h, "f1")

	require.Equal(t, http.StatusOK, rec.Code)

	var perf contracts.FundPerformance
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &perf))

	assert.Equal(t, "f1", perf.FundID)
	require.NotNil(t, perf.TVPI)
	assert.InDelta(t, 1.25, *perf.TVPI, 1e-9) // (2000 + 500) / 2000
	require.NotNil(t, perf.DPI)
	assert.InDelta(t, 0.25, *perf.DPI, 1e-9)
	require.NotNil(t, perf.RVPI)
	assert.InDelta(t, 1.0, *perf.RVPI, 1e-9)
	require.NotNil(t, perf.MOIC)
	assert.InDelta(t, *perf.TVPI, *perf.MOIC, 1e-9)
	require.NotNil(t, perf.IRR)
	assert.Greater(t, *perf.IRR, 0.0)
}

func TestGetPerformance_EmptyFundReturnsNulls(t *testing.T) {
	h := NewFundHandler(&fakeInvestmentRepo{}, &fakeCashFlowRepo{}, handlerLogger(t))
	rec := performanceRequest(t, h, "f-empty")

	require.Equal(t, http.StatusOK, rec.Code)

	// Each ratio serializes as explicit JSON null, never 0
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	for _, field := range []string{"tvpi", "dpi", "rvpi", "moic", "irr"} {
		assert.JSONEq(t, "null", string(raw[field]), "field %s", field)
	}
}
