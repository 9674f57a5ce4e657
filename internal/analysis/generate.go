package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/career-pathway/internal/llm"
	"github.com/jonathan/career-pathway/internal/prompts"
	"github.com/jonathan/career-pathway/internal/types"
)

// GenerateRequest asks the generator for a report and analyzes the result.
type GenerateRequest struct {
	TargetRole string `json:"target_role" validate:"required"`
	Profile    string `json:"profile" validate:"required"`
	DryRun     bool   `json:"dry_run"`
}

// GenerateReport prompts the LLM for a career report, repairs its syntax once if needed and
// runs the result through Analyze. Whatever the model returns is normalized; a response that
// still fails to parse yields a fully defaulted report.
func (s *Service) GenerateReport(ctx context.Context, req GenerateRequest) (*Result, error) {
	if s.llm == nil {
		return nil, ErrNoGenerator
	}
	if strings.TrimSpace(req.Profile) == "" {
		return nil, ErrEmptyProfile
	}

	catalogSkills, _ := s.catalog.SkillsForRole(req.TargetRole)
	prompt, err := prompts.Render(prompts.ReportFile, prompts.KeyGenerateReport, map[string]string{
		"TargetRole":      req.TargetRole,
		"FrameworkSkills": describeSkills(catalogSkills),
		"Profile":         req.Profile,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("generating report", "target_role", req.TargetRole, "model", s.llm.GetModel(llm.TierStandard))
	raw, err := s.llm.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &GenerateError{TargetRole: req.TargetRole, Cause: err}
	}
	s.emit(StepGenerate, "Generated report", uuid.Nil)

	if !json.Valid([]byte(raw)) {
		raw = s.repairJSON(ctx, raw)
	}

	return s.Analyze(ctx, Request{
		TargetRole: req.TargetRole,
		Report:     json.RawMessage(raw),
		DryRun:     req.DryRun,
	})
}

// repairJSON asks the lite model to fix the syntax of text. On failure the original text is
// returned and the normalizer handles it.
func (s *Service) repairJSON(ctx context.Context, text string) string {
	prompt, err := prompts.Render(prompts.ReportFile, prompts.KeyRepairReport, map[string]string{"Text": text})
	if err != nil {
		return text
	}
	fixed, err := s.llm.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil || !json.Valid([]byte(fixed)) {
		s.log.Warn("report JSON repair failed", "error", err)
		return text
	}
	return fixed
}

func describeSkills(records []types.FrameworkSkillRecord) string {
	if len(records) == 0 {
		return "(none listed)"
	}
	var sb strings.Builder
	for _, r := range records {
		fmt.Fprintf(&sb, "- %s (%s", r.Name, r.Framework)
		if r.Level != "" {
			fmt.Fprintf(&sb, ", %s", r.Level)
		}
		sb.WriteString(")\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
