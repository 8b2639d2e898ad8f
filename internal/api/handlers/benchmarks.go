package handlers

import (
	"net/http"
	"strconv"

	"github.com/fundlens/backend/internal/analytics"
	"github.com/fundlens/backend/internal/benchmark"
	"github.com/fundlens/backend/internal/contracts"
	"github.com/fundlens/backend/pkg/logger"
	"github.com/fundlens/backend/pkg/redis"
)

// BenchmarkHandler serves stored benchmark rows, company percentile
// ranks and the manual recomputation trigger.
type BenchmarkHandler struct {
	benchmarks contracts.BenchmarkRepository
	calculator *benchmark.Calculator
	cache      *redis.Cache
	logger     *logger.Logger
}

// NewBenchmarkHandler creates a new benchmark handler
func NewBenchmarkHandler(
	repo contracts.BenchmarkRepository,
	calc *benchmark.Calculator,
	cache *redis.Cache,
	log *logger.Logger,
) *BenchmarkHandler {
	return &BenchmarkHandler{
		benchmarks: repo,
		calculator: calc,
		cache:      cache,
		logger:     log,
	}
}

// Get returns stored benchmark rows for one metric.
// GET /api/benchmarks?metric=arr&period_type=quarterly&industry=fintech&stage=seed
func (h *BenchmarkHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	metric := r.URL.Query().Get("metric")
	if metric == "" {
		respondError(w, http.StatusBadRequest, "Missing metric parameter")
		return
	}

	periodType, ok := periodTypeParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid period_type (valid: monthly, quarterly, annual)")
		return
	}

	industry := optionalParam(r, "industry")
	stage := optionalParam(r, "stage")

	rows, err := h.benchmarks.Find(ctx, metric, periodType, industry, stage)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch benchmarks")
		respondError(w, http.StatusInternalServerError, "Failed to fetch benchmarks")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"metric":     metric,
		"benchmarks": rows,
	})
}

// RankResponse carries a company value mapped onto the stored
// distribution thresholds. The percentile is an approximation from
// four thresholds, not an exact empirical-CDF lookup.
type RankResponse struct {
	Metric     string                 `json:"metric"`
	Value      float64                `json:"value"`
	Percentile float64                `json:"percentile"`
	Benchmark  *contracts.BenchmarkRow `json:"benchmark"`
}

// GetRank maps a value to its approximate percentile rank.
// GET /api/benchmarks/rank?metric=arr&period_type=quarterly&value=1200000
func (h *BenchmarkHandler) GetRank(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	metric := r.URL.Query().Get("metric")
	if metric == "" {
		respondError(w, http.StatusBadRequest, "Missing metric parameter")
		return
	}

	value, err := strconv.ParseFloat(r.URL.Query().Get("value"), 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid value parameter")
		return
	}

	periodType, ok := periodTypeParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid period_type (valid: monthly, quarterly, annual)")
		return
	}

	industry := optionalParam(r, "industry")
	stage := optionalParam(r, "stage")

	rows, err := h.benchmarks.Find(ctx, metric, periodType, industry, stage)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch benchmark for ranking")
		respondError(w, http.StatusInternalServerError, "Failed to fetch benchmark")
		return
	}

	if len(rows) == 0 {
		respondError(w, http.StatusNotFound, "No benchmark published for this metric and grouping")
		return
	}

	row := rows[0]
	percentile := analytics.CompanyPercentile(value, analytics.Percentiles{
		P25: row.P25,
		P50: row.P50,
		P75: row.P75,
		P90: row.P90,
	})

	respondJSON(w, http.StatusOK, RankResponse{
		Metric:     metric,
		Value:      value,
		Percentile: percentile,
		Benchmark:  row,
	})
}

// Recompute triggers a full benchmark recomputation. Safe to re-run:
// the pipeline is a pure function of stored values with an idempotent
// upsert. The route is rate-limited upstream.
// POST /api/benchmarks/recompute
func (h *BenchmarkHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	published, err := h.calculator.RecomputeAll(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Benchmark recomputation failed")
		respondError(w, http.StatusInternalServerError, "Benchmark recomputation failed")
		return
	}

	// Cached reads may now be stale
	if err := h.cache.InvalidatePrefix(ctx); err != nil {
		h.logger.WithError(err).Warn("Failed to invalidate cache after recompute")
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"published": published,
	})
}
