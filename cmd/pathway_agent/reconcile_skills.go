package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-pathway/internal/skills"
	"github.com/jonathan/career-pathway/internal/types"
)

var reconcileSkillsCmd = &cobra.Command{
	Use:   "reconcile-skills",
	Short: "Merge framework, gap and strength records into a unified skill registry",
	RunE:  runReconcileSkills,
}

var (
	reconcileInputs string
	reconcileOut    string
)

// reconcileOutput is the JSON written by reconcile-skills.
type reconcileOutput struct {
	Frameworks []string                  `json:"frameworks"`
	Skills     []types.UnifiedSkillEntry `json:"skills"`
	Warnings   skills.Diagnostics        `json:"warnings"`
}

func init() {
	reconcileSkillsCmd.Flags().StringVarP(&reconcileInputs, "inputs", "i", "", "Path to SkillInputs JSON, or - for stdin (required)")
	reconcileSkillsCmd.Flags().StringVarP(&reconcileOut, "out", "o", "", "Path to output registry JSON (default stdout)")

	if err := reconcileSkillsCmd.MarkFlagRequired("inputs"); err != nil {
		panic(fmt.Sprintf("failed to mark inputs flag as required: %v", err))
	}

	rootCmd.AddCommand(reconcileSkillsCmd)
}

func runReconcileSkills(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.log.Sync()

	in, err := readSkillInputs(reconcileInputs)
	if err != nil {
		return err
	}

	reg, warnings := skills.ReconcileInputs(in)
	for _, w := range warnings {
		e.log.Warn("reconcile warning", "kind", string(w.Kind), "source", w.Source, "index", w.Index, "skill", w.Skill, "detail", w.Detail)
	}
	if warnings == nil {
		warnings = skills.Diagnostics{}
	}

	if err := writeOutput(reconcileOut, reconcileOutput{
		Frameworks: reg.Frameworks(),
		Skills:     reg.Entries(),
		Warnings:   warnings,
	}); err != nil {
		return err
	}

	if e.cfg.Verbose {
		e.printer.PrintRegistry(reg)
		e.printer.PrintSkillDiagnostics(warnings)
	}
	return nil
}
