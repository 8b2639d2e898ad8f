package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fundlens/backend/internal/insight"
	"github.com/fundlens/backend/pkg/config"
	"github.com/fundlens/backend/pkg/logger"
	"github.com/fundlens/backend/pkg/redis"
)

// PortfolioHandler serves cross-company and per-company metric views.
type PortfolioHandler struct {
	insight *insight.Service
	cache   *redis.Cache
	cfg     *config.Config
	logger  *logger.Logger
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(svc *insight.Service, cache *redis.Cache, cfg *config.Config, log *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		insight: svc,
		cache:   cache,
		cfg:     cfg,
		logger:  log,
	}
}

// GetSummary returns aggregated metrics across the portfolio for the
// latest stored period.
// GET /api/portfolio/summary?period_type=quarterly
func (h *PortfolioHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	periodType, ok := periodTypeParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid period_type (valid: monthly, quarterly, annual)")
		return
	}

	cacheKey := fmt.Sprintf("portfolio:summary:%s", periodType)

	var summary insight.PortfolioSummary
	err := h.cache.GetOrSet(ctx, cacheKey, &summary, h.cfg.Redis.CacheTTL, func() (interface{}, error) {
		return h.insight.PortfolioSummary(ctx, periodType)
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute portfolio summary")
		respondError(w, http.StatusInternalServerError, "Failed to compute portfolio summary")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// GetCompanyMetrics returns per-period rollup series for one company.
// GET /api/portfolio/companies/{id}/metrics?period_type=quarterly&metric=arr
func (h *PortfolioHandler) GetCompanyMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	companyID := mux.Vars(r)["id"]
	if companyID == "" {
		respondError(w, http.StatusBadRequest, "Missing company id")
		return
	}

	periodType, ok := periodTypeParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid period_type (valid: monthly, quarterly, annual)")
		return
	}

	metricName := r.URL.Query().Get("metric")

	series, err := h.insight.CompanyMetrics(ctx, companyID, periodType, metricName)
	if err != nil {
		h.logger.WithError(err).WithField("company_id", companyID).Error("Failed to build company metrics")
		respondError(w, http.StatusNotFound, "Company not found or metrics unavailable")
		return
	}

	respondJSON(w, http.StatusOK, series)
}
