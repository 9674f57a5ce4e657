package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-pathway/internal/analysis"
	"github.com/jonathan/career-pathway/internal/llm"
	"github.com/jonathan/career-pathway/internal/observability"
)

var generateReportCmd = &cobra.Command{
	Use:   "generate-report",
	Short: "Generate a career report for a target role with the LLM and analyze it",
	RunE:  runGenerateReport,
}

var (
	generateProfile  string
	generateRole     string
	generateResponse string
	generateAPIKey   string
	generateDryRun   bool
	generateOut      string
)

func init() {
	generateReportCmd.Flags().StringVarP(&generateProfile, "profile", "p", "", "Path to the candidate profile text, or - for stdin (required)")
	generateReportCmd.Flags().StringVar(&generateRole, "role", "", "Target role (required)")
	generateReportCmd.Flags().StringVar(&generateResponse, "response", "", "Replay a recorded model response from this file instead of calling the API")
	generateReportCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Gemini API key (overrides config and GEMINI_API_KEY)")
	generateReportCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Do not store the analysis")
	generateReportCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Path to output analysis JSON (default stdout)")

	if err := generateReportCmd.MarkFlagRequired("profile"); err != nil {
		panic(fmt.Sprintf("failed to mark profile flag as required: %v", err))
	}
	if err := generateReportCmd.MarkFlagRequired("role"); err != nil {
		panic(fmt.Sprintf("failed to mark role flag as required: %v", err))
	}

	rootCmd.AddCommand(generateReportCmd)
}

func runGenerateReport(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.log.Sync()

	profile, err := readInput(generateProfile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newGenerator(ctx, e)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	svc, repo, err := e.newService(ctx, client, observability.NewMetrics())
	if err != nil {
		return err
	}
	defer repo.Close()

	res, err := svc.GenerateReport(ctx, analysis.GenerateRequest{
		TargetRole: generateRole,
		Profile:    string(profile),
		DryRun:     generateDryRun,
	})
	if err != nil {
		return fmt.Errorf("report generation failed: %w", err)
	}

	return writeResult(e, res, generateOut)
}

// newGenerator returns a replaying client when --response is set and a Gemini client otherwise.
func newGenerator(ctx context.Context, e *env) (llm.Client, error) {
	if generateResponse != "" {
		recorded, err := readInput(generateResponse)
		if err != nil {
			return nil, err
		}
		return llm.NewStaticClient(string(recorded)), nil
	}

	apiKey := generateAPIKey
	if apiKey == "" {
		apiKey = e.cfg.APIKey
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}
