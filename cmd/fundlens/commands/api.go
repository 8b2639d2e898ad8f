package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fundlens/backend/internal/api"
	"github.com/fundlens/backend/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health                                 - Health check
  GET  /api/portfolio/summary                  - Cross-portfolio aggregates
  GET  /api/portfolio/companies/{id}/metrics   - Per-company rollup series
  GET  /api/benchmarks                         - Published benchmark rows
  GET  /api/benchmarks/rank                    - Percentile rank for a value
  POST /api/benchmarks/recompute               - Trigger recomputation
  GET  /api/funds/{id}/performance             - Fund multiples and IRR

Example:
  go run ./cmd/fundlens api
  go run ./cmd/fundlens api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides config)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Fundlens API Server ===")

	deps, err := buildDeps()
	if err != nil {
		return err
	}
	defer deps.db.Close()

	if apiPort != "" {
		deps.cfg.Port = apiPort
	}

	log := deps.logger
	log.WithFields(map[string]interface{}{
		"port": deps.cfg.Port,
		"env":  deps.cfg.Env,
	}).Info("Initializing API server")

	portfolioHandler := handlers.NewPortfolioHandler(deps.insight, deps.cache, deps.cfg, log)
	benchmarkHandler := handlers.NewBenchmarkHandler(deps.benchmarks, deps.calculator, deps.cache, log)
	fundHandler := handlers.NewFundHandler(deps.investments, deps.cashFlows, log)

	router := api.NewRouter(api.RouterDeps{
		Portfolio:           portfolioHandler,
		Benchmarks:          benchmarkHandler,
		Funds:               fundHandler,
		RecomputeRatePerMin: deps.cfg.Benchmark.RecomputeRatePerMin,
	}, log)

	server := api.New(deps.cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\nServer running on http://localhost:%s\n", deps.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
