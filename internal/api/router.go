package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/fundlens/backend/internal/api/handlers"
	"github.com/fundlens/backend/pkg/logger"
)

// RouterDeps bundles the handlers the router wires up.
type RouterDeps struct {
	Portfolio  *handlers.PortfolioHandler
	Benchmarks *handlers.BenchmarkHandler
	Funds      *handlers.FundHandler

	// RecomputeRatePerMin throttles manual benchmark recompute triggers.
	RecomputeRatePerMin int
}

// NewRouter creates and configures the HTTP router.
func NewRouter(deps RouterDeps, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	// Portfolio endpoints
	api.HandleFunc("/portfolio/summary", deps.Portfolio.GetSummary).Methods("GET")
	api.HandleFunc("/portfolio/companies/{id}/metrics", deps.Portfolio.GetCompanyMetrics).Methods("GET")

	// Benchmark endpoints
	api.HandleFunc("/benchmarks", deps.Benchmarks.Get).Methods("GET")
	api.HandleFunc("/benchmarks/rank", deps.Benchmarks.GetRank).Methods("GET")
	api.Handle("/benchmarks/recompute",
		rateLimitMiddleware(deps.RecomputeRatePerMin, log)(http.HandlerFunc(deps.Benchmarks.Recompute)),
	).Methods("POST")

	// Fund endpoints
	api.HandleFunc("/funds/{id}/performance", deps.Funds.GetPerformance).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "fundlens-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitMiddleware throttles an endpoint with a token bucket.
// Recomputation walks the whole metric table, so hammering the trigger
// would pile up full-portfolio scans.
func rateLimitMiddleware(perMinute int, log *logger.Logger) mux.MiddlewareFunc {
	if perMinute <= 0 {
		perMinute = 2
	}
	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.WithField("path", r.URL.Path).Warn("Rate limit exceeded")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "Too many recompute requests",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
