package jobs

import (
	"context"
	"fmt"

	"github.com/fundlens/backend/internal/benchmark"
	"github.com/fundlens/backend/pkg/logger"
	"github.com/fundlens/backend/pkg/redis"
)

// BenchmarkJob recomputes portfolio benchmarks nightly, after the
// day's metric ingestion has settled.
type BenchmarkJob struct {
	calculator *benchmark.Calculator
	cache      *redis.Cache
	schedule   string
	logger     *logger.Logger
}

// NewBenchmarkJob creates a new benchmark recomputation job
func NewBenchmarkJob(calc *benchmark.Calculator, cache *redis.Cache, schedule string, log *logger.Logger) *BenchmarkJob {
	return &BenchmarkJob{
		calculator: calc,
		cache:      cache,
		schedule:   schedule,
		logger:     log,
	}
}

// Name returns the job name
func (j *BenchmarkJob) Name() string {
	return "benchmark_recompute"
}

// Schedule returns the cron schedule expression
func (j *BenchmarkJob) Schedule() string {
	return j.schedule
}

// Run recomputes all benchmarks and invalidates cached reads.
func (j *BenchmarkJob) Run(ctx context.Context) error {
	published, err := j.calculator.RecomputeAll(ctx)
	if err != nil {
		return fmt.Errorf("benchmark recompute failed: %w", err)
	}

	if err := j.cache.InvalidatePrefix(ctx); err != nil {
		j.logger.WithError(err).Warn("Failed to invalidate cache after scheduled recompute")
	}

	j.logger.WithField("published", published).Info("Scheduled benchmark recompute finished")
	return nil
}
