package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	prompt, err := Get(ReportFile, KeyGenerateReport)
	require.NoError(t, err)
	assert.Contains(t, prompt, "skillsAssessment")
	assert.Contains(t, prompt, "{{.TargetRole}}")

	_, err = Get("nonexistent.json", "some-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")

	_, err = Get(ReportFile, "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestList(t *testing.T) {
	keys, err := List(ReportFile)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyGenerateReport, KeyRepairReport}, keys)
}

func TestRender(t *testing.T) {
	prompt, err := Render(ReportFile, KeyGenerateReport, map[string]string{
		"TargetRole":      "Data Analyst",
		"FrameworkSkills": "- Data management (SFIA 9, Level 3)",
		"Profile":         "Five years in retail operations.",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, `"Data Analyst"`)
	assert.Contains(t, prompt, "- Data management (SFIA 9, Level 3)")
	assert.Contains(t, prompt, "Five years in retail operations.")
	assert.NotContains(t, prompt, "{{.")
}

func TestRender_ProfileIsNotInterpreted(t *testing.T) {
	prompt, err := Render(ReportFile, KeyRepairReport, map[string]string{"Text": `{"a": "{{.Injected}}"}`})
	require.NoError(t, err)
	assert.Contains(t, prompt, `{"a": "{{.Injected}}"}`)
}

func TestRender_Errors(t *testing.T) {
	_, err := Render(ReportFile, "missing", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = Render(ReportFile, KeyGenerateReport, map[string]string{"TargetRole": "Data Analyst"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to render prompt")
}

func TestOpen_Caches(t *testing.T) {
	first, err := open(ReportFile)
	require.NoError(t, err)
	second, err := open(ReportFile)
	require.NoError(t, err)
	assert.Same(t, first, second)
}
