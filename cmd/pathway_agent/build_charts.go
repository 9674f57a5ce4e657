package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-pathway/internal/charts"
	"github.com/jonathan/career-pathway/internal/schemas"
	"github.com/jonathan/career-pathway/internal/skills"
	"github.com/jonathan/career-pathway/internal/types"
)

var buildChartsCmd = &cobra.Command{
	Use:   "build-charts",
	Short: "Build bar, pie and radar projections from skill inputs",
	RunE:  runBuildCharts,
}

var (
	chartsInputs    string
	chartsFramework string
	chartsRadarSize int
	chartsOut       string
)

func init() {
	buildChartsCmd.Flags().StringVarP(&chartsInputs, "inputs", "i", "", "Path to SkillInputs JSON, or - for stdin (required)")
	buildChartsCmd.Flags().StringVarP(&chartsFramework, "framework", "f", "", "Framework to project (default every framework)")
	buildChartsCmd.Flags().IntVar(&chartsRadarSize, "radar-size", 0, "Skills on the radar chart (default from config)")
	buildChartsCmd.Flags().StringVarP(&chartsOut, "out", "o", "", "Path to output ChartProjection JSON array (default stdout)")

	if err := buildChartsCmd.MarkFlagRequired("inputs"); err != nil {
		panic(fmt.Sprintf("failed to mark inputs flag as required: %v", err))
	}

	rootCmd.AddCommand(buildChartsCmd)
}

func runBuildCharts(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.log.Sync()

	radarSize := chartsRadarSize
	if radarSize <= 0 {
		radarSize = e.cfg.RadarSize
	}
	scales, err := e.scales()
	if err != nil {
		return err
	}

	in, err := readSkillInputs(chartsInputs)
	if err != nil {
		return err
	}
	reg, _ := skills.ReconcileInputs(in)

	var projections []types.ChartProjection
	if chartsFramework != "" {
		proj, err := charts.BuildWithRadarSize(reg.Scope(chartsFramework), chartsFramework, scales, radarSize)
		if err != nil {
			return fmt.Errorf("failed to build charts: %w", err)
		}
		projections = []types.ChartProjection{proj}
	} else {
		var unscaled []string
		projections, unscaled, err = charts.BuildForRegistry(reg, scales, radarSize)
		if err != nil {
			return fmt.Errorf("failed to build charts: %w", err)
		}
		for _, fw := range unscaled {
			e.log.Warn("no scale for framework, skipping charts", "framework", fw)
			_, _ = fmt.Fprintf(os.Stderr, "Warning: No level scale configured for framework %q, skipped\n", fw)
		}
	}

	if err := checkOutput(schemas.ChartProjectionsSchema, projections, "chart projections"); err != nil {
		return err
	}
	if err := writeOutput(chartsOut, projections); err != nil {
		return err
	}

	if e.cfg.Verbose {
		for i := range projections {
			e.printer.PrintChartProjection(&projections[i])
		}
	}
	return nil
}
