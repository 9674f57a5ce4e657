package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-pathway/internal/ranking"
	"github.com/jonathan/career-pathway/internal/schemas"
	"github.com/jonathan/career-pathway/internal/skills"
	"github.com/jonathan/career-pathway/internal/types"
)

var rankSkillsCmd = &cobra.Command{
	Use:   "rank-skills",
	Short: "Rank the reconciled skills of one or every framework",
	Long: "Reconciles the inputs and writes the top-N skills per framework: gaps first by importance, " +
		"then the rest by importance or relevance. Ties keep registry order.",
	RunE: runRankSkills,
}

var (
	rankInputs    string
	rankFramework string
	rankTopN      int
	rankOut       string
)

func init() {
	rankSkillsCmd.Flags().StringVarP(&rankInputs, "inputs", "i", "", "Path to SkillInputs JSON, or - for stdin (required)")
	rankSkillsCmd.Flags().StringVarP(&rankFramework, "framework", "f", "", "Framework to rank (default every framework)")
	rankSkillsCmd.Flags().IntVarP(&rankTopN, "top-n", "n", 0, "Number of skills per framework (default from config)")
	rankSkillsCmd.Flags().StringVarP(&rankOut, "out", "o", "", "Path to output RankedSkills JSON array (default stdout)")

	if err := rankSkillsCmd.MarkFlagRequired("inputs"); err != nil {
		panic(fmt.Sprintf("failed to mark inputs flag as required: %v", err))
	}

	rootCmd.AddCommand(rankSkillsCmd)
}

func runRankSkills(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.log.Sync()

	if rankTopN < 0 {
		return fmt.Errorf("--top-n must not be negative")
	}
	n := rankTopN
	if n == 0 {
		n = e.cfg.DefaultTopN
	}

	in, err := readSkillInputs(rankInputs)
	if err != nil {
		return err
	}
	reg, _ := skills.ReconcileInputs(in)

	frameworks := reg.Frameworks()
	if rankFramework != "" {
		frameworks = []string{rankFramework}
	}
	ranked := make([]types.RankedSkills, 0, len(frameworks))
	for _, fw := range frameworks {
		ranked = append(ranked, ranking.TopN(reg, fw, n))
	}

	if err := checkOutput(schemas.RankedSkillsSchema, ranked, "ranked skills"); err != nil {
		return err
	}
	if err := writeOutput(rankOut, ranked); err != nil {
		return err
	}

	if e.cfg.Verbose {
		for i := range ranked {
			e.printer.PrintRankedSkills(&ranked[i])
		}
	}
	return nil
}
