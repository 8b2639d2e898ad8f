package commands

import (
	"fmt"

	"github.com/fundlens/backend/internal/analytics"
	"github.com/fundlens/backend/internal/benchmark"
	"github.com/fundlens/backend/internal/insight"
	"github.com/fundlens/backend/internal/store"
	"github.com/fundlens/backend/pkg/config"
	"github.com/fundlens/backend/pkg/database"
	"github.com/fundlens/backend/pkg/logger"
	"github.com/fundlens/backend/pkg/redis"
)

// appDeps is the wired dependency graph shared by the api, scheduler
// and recompute commands.
type appDeps struct {
	cfg    *config.Config
	logger *logger.Logger
	db     *database.DB
	cache  *redis.Cache

	companies   *store.CompanyRepository
	metrics     *store.MetricRepository
	investments *store.InvestmentRepository
	cashFlows   *store.CashFlowRepository
	benchmarks  *store.BenchmarkRepository

	insight    *insight.Service
	calculator *benchmark.Calculator
}

// buildDeps loads config and wires everything up. The caller owns
// db.Close().
func buildDeps() (*appDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	cache := redis.NewCache(redisClient, "fundlens")

	companies := store.NewCompanyRepository(db.Pool)
	metrics := store.NewMetricRepository(db.Pool)
	investments := store.NewInvestmentRepository(db.Pool)
	cashFlows := store.NewCashFlowRepository(db.Pool)
	benchmarks := store.NewBenchmarkRepository(db.Pool)

	catalog := analytics.DefaultCatalog()

	return &appDeps{
		cfg:         cfg,
		logger:      log,
		db:          db,
		cache:       cache,
		companies:   companies,
		metrics:     metrics,
		investments: investments,
		cashFlows:   cashFlows,
		benchmarks:  benchmarks,
		insight:     insight.NewService(companies, metrics, catalog, log),
		calculator: benchmark.NewCalculator(
			companies, metrics, benchmarks, catalog, cfg.Benchmark, log,
		),
	}, nil
}
