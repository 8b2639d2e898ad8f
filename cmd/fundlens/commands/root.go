package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fundlens",
	Short: "Fundlens - portfolio analytics backend",
	Long: `Fundlens Unified CLI

Portfolio reporting backend for a venture fund: metric aggregation,
temporal rollups, cross-portfolio benchmarks and fund performance.

Usage:
  go run ./cmd/fundlens [command]

Examples:
  go run ./cmd/fundlens api
  go run ./cmd/fundlens scheduler start
  go run ./cmd/fundlens recompute
  go run ./cmd/fundlens test-db`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
