// Package main provides the pathway_agent CLI and HTTP server for career pathway analysis.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "pathway_agent",
	Short: "Career pathway report normalization and skill reconciliation",
	Long: "pathway_agent normalizes generated career reports into a fixed 11-section shape, reconciles " +
		"framework, gap and strength skill records into one registry, and ranks and charts the result.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML/JSON config file (default $PATHWAY_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed summaries to stdout")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
