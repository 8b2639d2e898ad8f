package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fundlens/backend/pkg/config"
	"github.com/fundlens/backend/pkg/logger"
)

// testLoggerCmd represents the test-logger command
var testLoggerCmd = &cobra.Command{
	Use:   "test-logger",
	Short: "Test structured logging output",
	Long: `Exercises the structured logger.

This command:
- prints JSON and console formats
- exercises log levels
- logs structured fields and error context

Example:
  go run ./cmd/fundlens test-logger
  go run ./cmd/fundlens test-logger --env production`,
	RunE: runTestLogger,
}

func init() {
	rootCmd.AddCommand(testLoggerCmd)
}

func runTestLogger(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Fundlens Logger Test ===")

	fmt.Println("1. JSON Format (Production)")
	fmt.Println("--------------------------------")
	testJSONFormat()
	fmt.Println()

	fmt.Println("2. Console Format (Development)")
	fmt.Println("--------------------------------")
	testConsoleFormat()
	fmt.Println()

	fmt.Println("3. Structured Logging with Fields")
	fmt.Println("--------------------------------")
	testStructuredLogging()
	fmt.Println()

	fmt.Println("4. Error Logging")
	fmt.Println("--------------------------------")
	testErrorLogging()
	fmt.Println()

	fmt.Println("All logger tests completed")
	return nil
}

func testJSONFormat() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
		Database: config.DatabaseConfig{
			URL: "dummy", // Required by config validation
		},
	}

	log := logger.New(cfg)
	log.Info("Service started")
	log.Warn("High memory usage detected")
	log.Error("Failed to reach database")
}

func testConsoleFormat() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "debug",
		LogFormat: "console",
		Database: config.DatabaseConfig{
			URL: "dummy",
		},
	}

	log := logger.New(cfg)
	log.Debug("Debugging application flow")
	log.Info("Request received from client")
	log.Warn("Cache miss, computing from database")
}

func testStructuredLogging() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
		Database: config.DatabaseConfig{
			URL: "dummy",
		},
	}

	log := logger.New(cfg)

	// Single field
	companyLog := log.WithField("company_id", "CMP-12345")
	companyLog.Info("Metrics ingested")

	// Multiple fields
	benchLog := log.WithFields(map[string]interface{}{
		"metric":      "arr",
		"period_type": "quarterly",
		"industry":    "fintech",
		"sample_size": 12,
	})
	benchLog.Info("Benchmark published")

	// Chained fields
	log.WithField("module", "benchmark").
		WithField("cadence", "quarterly").
		Info("Recomputation started")
}

func testErrorLogging() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "error",
		LogFormat: "json",
		Database: config.DatabaseConfig{
			URL: "dummy",
		},
	}

	log := logger.New(cfg)

	// Simple error
	err := errors.New("connection timeout")
	log.WithError(err).Error("Failed to fetch metric rows")

	// Error with context
	log.WithError(err).
		WithFields(map[string]interface{}{
			"retry_count": 3,
			"timeout_ms":  5000,
			"fund_id":     "FND-001",
		}).
		Error("Connection failed after retries")
}
