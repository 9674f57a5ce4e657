package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-pathway/internal/report"
	"github.com/jonathan/career-pathway/internal/schemas"
)

var normalizeReportCmd = &cobra.Command{
	Use:   "normalize-report",
	Short: "Normalize a generated career report into the fixed 11-section shape",
	Long: "Reads any JSON document (or non-JSON text) produced by the report generator and writes a " +
		"NormalizedReport in which every section and field is present, substituting typed defaults.",
	RunE: runNormalizeReport,
}

var (
	normalizeReportIn      string
	normalizeReportOut     string
	normalizeReportDefects string
	normalizeReportStrict  bool
)

func init() {
	normalizeReportCmd.Flags().StringVarP(&normalizeReportIn, "in", "i", "", "Path to raw report file, or - for stdin (required)")
	normalizeReportCmd.Flags().StringVarP(&normalizeReportOut, "out", "o", "", "Path to output NormalizedReport JSON (default stdout)")
	normalizeReportCmd.Flags().StringVar(&normalizeReportDefects, "defects-out", "", "Optional path to write the defect list JSON")
	normalizeReportCmd.Flags().BoolVar(&normalizeReportStrict, "strict", false, "Exit with an error when the input is not a JSON object")

	if err := normalizeReportCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(normalizeReportCmd)
}

func runNormalizeReport(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.log.Sync()

	raw, err := readInput(normalizeReportIn)
	if err != nil {
		return err
	}

	rep, defects := report.NormalizeJSONWithDiagnostics(raw)
	if defects == nil {
		defects = report.Diagnostics{}
	}
	e.log.Debug("normalized report", "defects", len(defects), "malformed", defects.Malformed())
	if normalizeReportStrict && defects.Malformed() {
		return fmt.Errorf("input %s is not a JSON object", normalizeReportIn)
	}

	if err := checkOutput(schemas.NormalizedReportSchema, rep, "normalized report"); err != nil {
		return err
	}
	if err := writeOutput(normalizeReportOut, rep); err != nil {
		return err
	}
	if normalizeReportDefects != "" {
		if err := writeOutput(normalizeReportDefects, defects); err != nil {
			return err
		}
	}

	if e.cfg.Verbose {
		e.printer.PrintReportSummary(&rep)
		e.printer.PrintReportDefects(defects)
	}
	return nil
}
