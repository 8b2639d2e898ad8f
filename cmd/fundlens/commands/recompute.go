package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// recomputeCmd represents the recompute command
var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Recompute all benchmarks once",
	Long: `Runs one full benchmark recomputation and exits.

Reads the latest stored metric value per company, groups by industry
and stage, computes percentile distributions and upserts the results.
The pipeline is idempotent: re-running on unchanged data rewrites
identical rows.

Example:
  go run ./cmd/fundlens recompute
  go run ./cmd/fundlens recompute --timeout 10m`,
	RunE: runRecompute,
}

var recomputeTimeout time.Duration

func init() {
	rootCmd.AddCommand(recomputeCmd)

	recomputeCmd.Flags().DurationVar(&recomputeTimeout, "timeout", 5*time.Minute, "recomputation timeout")
}

func runRecompute(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Fundlens Benchmark Recompute ===")

	deps, err := buildDeps()
	if err != nil {
		return err
	}
	defer deps.db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), recomputeTimeout)
	defer cancel()

	start := time.Now()
	published, err := deps.calculator.RecomputeAll(ctx)
	if err != nil {
		return fmt.Errorf("recompute benchmarks: %w", err)
	}

	if err := deps.cache.InvalidatePrefix(ctx); err != nil {
		deps.logger.WithError(err).Warn("Failed to invalidate cache after recompute")
	}

	fmt.Printf("Published %d benchmark rows in %v\n", published, time.Since(start).Round(time.Millisecond))
	return nil
}
