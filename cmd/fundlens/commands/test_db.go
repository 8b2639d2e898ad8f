package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fundlens/backend/pkg/config"
	"github.com/fundlens/backend/pkg/database"
)

// testDBCmd represents the test-db command
var testDBCmd = &cobra.Command{
	Use:   "test-db",
	Short: "Test the PostgreSQL connection",
	Long: `Tests the database connection and shows pool statistics.

This command:
- loads DATABASE_URL from config
- opens the connection pool
- pings the database
- runs a health check and prints pool statistics

Example:
  go run ./cmd/fundlens test-db
  go run ./cmd/fundlens test-db --env production`,
	RunE: runTestDB,
}

func init() {
	rootCmd.AddCommand(testDBCmd)
}

func runTestDB(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Fundlens Database Connection Test ===")

	fmt.Println("Loading configuration...")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	fmt.Printf("Config loaded (ENV: %s)\n", cfg.Env)
	fmt.Printf("Database URL: %s\n\n", maskPassword(cfg.Database.URL))

	fmt.Println("Connecting to database...")
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	fmt.Println("Database connection established")

	fmt.Println("Testing connection (Ping)...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	fmt.Println("Ping successful")

	fmt.Println("Getting health status...")
	status, err := db.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	fmt.Println("Health Check Results:")
	fmt.Printf("   Healthy: %v\n", status.Healthy)
	fmt.Printf("   Response Time: %v\n", status.ResponseTime)
	fmt.Printf("   Timestamp: %v\n\n", status.Timestamp.Format(time.RFC3339))

	fmt.Println("Connection Pool Statistics:")
	fmt.Printf("   Max Connections: %d\n", status.MaxConns)
	fmt.Printf("   Total Connections: %d\n", status.TotalConns)
	fmt.Printf("   Idle Connections: %d\n", status.IdleConns)

	fmt.Println("\nAll tests passed")
	return nil
}

// maskPassword masks the password in the database URL for display
func maskPassword(url string) string {
	if len(url) < 55 {
		return url[:min(len(url), 30)] + "***"
	}
	return url[:30] + "***" + url[len(url)-25:]
}
