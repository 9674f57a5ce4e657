package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/career-pathway/internal/charts"
	"github.com/jonathan/career-pathway/internal/ranking"
	"github.com/jonathan/career-pathway/internal/report"
	"github.com/jonathan/career-pathway/internal/skills"
	"github.com/jonathan/career-pathway/internal/types"
)

func sampleRegistry() *skills.Registry {
	return skills.Reconcile(
		[]types.FrameworkSkillRecord{
			{Name: "Programming", Framework: "SFIA 9", Level: "Level 4"},
			{Name: "Testing", Framework: "SFIA 9", Level: "Level 3"},
			{Name: "Netiquette", Framework: "DigComp 2.2", Level: "Level 2"},
		},
		[]types.GapRecord{{Skill: "Testing", Importance: "critical", Description: "No test automation", Framework: "SFIA 9"}},
		[]types.StrengthRecord{{Skill: "Programming", Level: "Level 5", Relevance: "high", Framework: "SFIA 9"}},
	)
}

func TestPrintReportSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rep := report.Normalize(map[string]any{
		"executiveSummary": map[string]any{
			"keyFindings":     []any{"Strong delivery", "Needs cloud", "Good mentor", "Writes well"},
			"recommendedPath": "Platform engineering",
		},
		"profileOverview": map[string]any{"targetRole": "Staff Engineer"},
	})
	p.PrintReportSummary(&rep)
	output := buf.String()

	assert.Contains(t, output, "NORMALIZED REPORT")
	assert.Contains(t, output, "Staff Engineer")
	assert.Contains(t, output, "0/10 (No score available)")
	assert.Contains(t, output, "Platform engineering")
	assert.Contains(t, output, "... and 1 more")
}

func TestPrintReportSummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintReportSummary(nil)
	assert.Empty(t, buf.String())
}

func TestPrintReportDefects(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		var buf bytes.Buffer
		_, diags := report.NormalizeWithDiagnostics(report.Default())
		NewPrinter(&buf).PrintReportDefects(diags)
		assert.Contains(t, buf.String(), "MATCHED THE CONTRACT")
	})

	t.Run("malformed", func(t *testing.T) {
		var buf bytes.Buffer
		_, diags := report.NormalizeWithDiagnostics([]any{})
		NewPrinter(&buf).PrintReportDefects(diags)
		assert.Contains(t, buf.String(), "MALFORMED")
	})

	t.Run("partial", func(t *testing.T) {
		var buf bytes.Buffer
		_, diags := report.NormalizeWithDiagnostics(map[string]any{"executiveSummary": map[string]any{}})
		NewPrinter(&buf).PrintReportDefects(diags)
		output := buf.String()
		assert.Contains(t, output, "REPORT DEFECTS")
		assert.Contains(t, output, "executiveSummary.overview")
		assert.Contains(t, output, "more")
	})
}

func TestPrintRegistry(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRegistry(sampleRegistry())
	output := buf.String()

	assert.Contains(t, output, "Total skills: 3")
	assert.Contains(t, output, "SFIA 9 (2)")
	assert.Contains(t, output, "[RUV] Programming")
	assert.Contains(t, output, "[R--] Testing")
	assert.Contains(t, output, "DigComp 2.2 (1)")
}

func TestPrintRankedSkills(t *testing.T) {
	var buf bytes.Buffer
	top := ranking.TopN(sampleRegistry(), "SFIA 9", 5)
	NewPrinter(&buf).PrintRankedSkills(&top)
	output := buf.String()

	assert.Contains(t, output, "#1  Testing (gap)")
	assert.Contains(t, output, "Importance: 4")
	assert.Contains(t, output, "#2  Programming")
	assert.Contains(t, output, "Relevance: 3")
}

func TestPrintChartProjection(t *testing.T) {
	reg := sampleRegistry()

	var buf bytes.Buffer
	proj, err := charts.Build(reg.Scope("SFIA 9"), "SFIA 9", charts.DefaultScales())
	assert.NoError(t, err)
	NewPrinter(&buf).PrintChartProjection(&proj)
	output := buf.String()
	assert.Contains(t, output, "CHART: SFIA 9")
	assert.Contains(t, output, "Scale: 0-7")
	assert.Contains(t, output, "Validated: 1  User only: 0  Required only: 1")

	buf.Reset()
	empty, err := charts.Build(nil, "General", charts.DefaultScales())
	assert.NoError(t, err)
	NewPrinter(&buf).PrintChartProjection(&empty)
	assert.Contains(t, buf.String(), "NO SKILLS FOR GENERAL")
}

func TestPrintSkillDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	_, diags := skills.ReconcileWithDiagnostics(nil, []types.GapRecord{{Skill: "Finance", Importance: "urgent"}}, nil)
	NewPrinter(&buf).PrintSkillDiagnostics(diags)
	assert.Contains(t, buf.String(), "unknown_label")
	assert.Contains(t, buf.String(), "Finance")

	buf.Reset()
	NewPrinter(&buf).PrintSkillDiagnostics(nil)
	assert.Contains(t, buf.String(), "NO RECONCILIATION WARNINGS")
}
