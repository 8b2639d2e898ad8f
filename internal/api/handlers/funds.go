package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fundlens/backend/internal/analytics"
	"github.com/fundlens/backend/internal/contracts"
	"github.com/fundlens/backend/pkg/logger"
)

// FundHandler serves fund-level performance multiples.
type FundHandler struct {
	investments contracts.InvestmentRepository
	cashFlows   contracts.CashFlowRepository
	logger      *logger.Logger
}

// NewFundHandler creates a new fund handler
func NewFundHandler(
	investments contracts.InvestmentRepository,
	cashFlows contracts.CashFlowRepository,
	log *logger.Logger,
) *FundHandler {
	return &FundHandler{
		investments: investments,
		cashFlows:   cashFlows,
		logger:      log,
	}
}

// GetPerformance returns TVPI, DPI, RVPI, MOIC and IRR for a fund.
// Ratios that cannot be computed come back as JSON null rather than
// being omitted, so clients can tell "not computable" from "missing".
// GET /api/funds/{id}/performance
func (h *FundHandler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fundID := mux.Vars(r)["id"]
	if fundID == "" {
		respondError(w, http.StatusBadRequest, "Missing fund id")
		return
	}

	investments, err := h.investments.GetByFund(ctx, fundID)
	if err != nil {
		h.logger.WithError(err).WithField("fund_id", fundID).Error("Failed to fetch investments")
		respondError(w, http.StatusInternalServerError, "Failed to fetch fund investments")
		return
	}

	flows, err := h.cashFlows.GetByFund(ctx, fundID)
	if err != nil {
		h.logger.WithError(err).WithField("fund_id", fundID).Error("Failed to fetch cash flows")
		respondError(w, http.StatusInternalServerError, "Failed to fetch fund cash flows")
		return
	}

	performance := contracts.FundPerformance{
		FundID: fundID,
		TVPI:   analytics.TVPI(investments),
		DPI:    analytics.DPI(investments),
		RVPI:   analytics.RVPI(investments),
		MOIC:   analytics.MOIC(investments),
		IRR:    analytics.IRR(flows),
	}

	respondJSON(w, http.StatusOK, performance)
}
