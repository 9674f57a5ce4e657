package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-pathway/internal/analysis"
	"github.com/jonathan/career-pathway/internal/observability"
	"github.com/jonathan/career-pathway/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Normalize a report, reconcile it with the role catalog, rank and chart every framework",
	Long: "Runs the full analysis: the report is normalized, merged with the target role's catalog skills " +
		"and any extra inputs, then ranked and projected per framework. The analysis is stored unless " +
		"--dry-run is set.",
	RunE: runAnalyze,
}

var (
	analyzeReport string
	analyzeRole   string
	analyzeInputs string
	analyzeDryRun bool
	analyzeOut    string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeReport, "report", "r", "", "Path to raw report JSON, or - for stdin (required)")
	analyzeCmd.Flags().StringVar(&analyzeRole, "role", "", "Target role (default the report's profileOverview.targetRole)")
	analyzeCmd.Flags().StringVarP(&analyzeInputs, "inputs", "i", "", "Optional SkillInputs JSON applied after the report")
	analyzeCmd.Flags().BoolVar(&analyzeDryRun, "dry-run", false, "Do not store the analysis")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Path to output analysis JSON (default stdout)")

	if err := analyzeCmd.MarkFlagRequired("report"); err != nil {
		panic(fmt.Sprintf("failed to mark report flag as required: %v", err))
	}

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.log.Sync()

	raw, err := readInput(analyzeReport)
	if err != nil {
		return err
	}
	var extra types.SkillInputs
	if analyzeInputs != "" {
		if extra, err = readSkillInputs(analyzeInputs); err != nil {
			return err
		}
	}

	ctx := context.Background()
	svc, repo, err := e.newService(ctx, nil, observability.NewMetrics())
	if err != nil {
		return err
	}
	defer repo.Close()

	res, err := svc.Analyze(ctx, analysis.Request{
		TargetRole:      analyzeRole,
		Report:          raw,
		FrameworkSkills: extra.FrameworkSkills,
		Gaps:            extra.Gaps,
		Strengths:       extra.Strengths,
		DryRun:          analyzeDryRun,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	return writeResult(e, res, analyzeOut)
}

// writeResult writes an analysis result and, in verbose mode, prints its parts.
func writeResult(e *env, res *analysis.Result, out string) error {
	if err := writeOutput(out, res); err != nil {
		return err
	}
	if res.Stored && out != "" && out != "-" {
		fmt.Printf("Stored analysis %s\n", res.ID)
	}
	if e.cfg.Verbose {
		e.printer.PrintReportSummary(&res.Report)
		e.printer.PrintReportDefects(res.ReportDefects)
		for i := range res.Rankings {
			e.printer.PrintRankedSkills(&res.Rankings[i])
		}
		for i := range res.Charts {
			e.printer.PrintChartProjection(&res.Charts[i])
		}
		e.printer.PrintSkillDiagnostics(res.SkillWarnings)
	}
	return nil
}
