package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status",
	Long: `Shows database health and stored data counts.

Displayed information:
- database health and pool statistics
- portfolio company count
- stored metric row count
- published benchmark rows

Example:
  go run ./cmd/fundlens status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Fundlens Status ===")

	deps, err := buildDeps()
	if err != nil {
		return err
	}
	defer deps.db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	health, err := deps.db.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("database health check: %w", err)
	}

	fmt.Println("Database")
	fmt.Printf("   Healthy: %v\n", health.Healthy)
	fmt.Printf("   Response Time: %v\n", health.ResponseTime)
	fmt.Printf("   Connections: %d/%d (idle %d)\n",
		health.TotalConns, health.MaxConns, health.IdleConns)
	fmt.Println()

	counts := []struct {
		label string
		table string
	}{
		{"Companies", "portfolio.companies"},
		{"Metric rows", "portfolio.metric_rows"},
		{"Benchmarks", "portfolio.benchmarks"},
	}

	fmt.Println("Stored data")
	for _, c := range counts {
		var n int64
		query := fmt.Sprintf("SELECT count(*) FROM %s", c.table)
		if err := deps.db.Pool.QueryRow(ctx, query).Scan(&n); err != nil {
			return fmt.Errorf("count %s: %w", c.table, err)
		}
		fmt.Printf("   %-12s %d\n", c.label+":", n)
	}

	return nil
}
