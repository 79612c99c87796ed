// Package main provides the eduplan CLI: the HTTP API server plus one-shot commands for
// inspecting, drafting, exporting and narrating the stored business plan.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	storePath   string
	databaseURL string
	logFile     string
	modelName   string
	verbose     bool
	methodology string
)

var rootCmd = &cobra.Command{
	Use:   "eduplan",
	Short: "EduPlan business plan authoring service",
	Long: "EduPlan guides the writing of a business plan under the Traditional or Lean Canvas " +
		"methodology, drafts sections with Gemini, and exports, prints or narrates the result.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Path to the JSON draft store (default eduplan.json)")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "db-url", "", "PostgreSQL URL; overrides --store")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write rotated JSON logs to this file")
	rootCmd.PersistentFlags().StringVar(&modelName, "model", "", "Gemini model for every request")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().StringVarP(&methodology, "methodology", "m", "TRADITIONAL", "Plan methodology: TRADITIONAL or LEAN")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
