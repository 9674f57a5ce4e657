// Package schemas checks pipeline artifacts (normalized reports, skill inputs, rankings and chart
// projections) against the JSON Schemas shipped in the repository's schemas/ directory.
package schemas

import (
	"os"
	"path/filepath"
)

// Schema files, relative to the repository root.
const (
	NormalizedReportSchema = "schemas/normalized_report.schema.json"
	SkillInputsSchema      = "schemas/skill_inputs.schema.json"
	ChartProjectionsSchema = "schemas/chart_projections.schema.json"
	RankedSkillsSchema     = "schemas/ranked_skills.schema.json"
)

// searchDepth is how many ancestors of the working directory ResolveSchemaPath tries. Package
// tests run two levels below the root.
const searchDepth = 2

// ResolveSchemaPath returns the absolute path of rel found under the working directory or one of
// its nearest ancestors, or "" when no such file exists.
func ResolveSchemaPath(rel string) string {
	if filepath.IsAbs(rel) {
		if _, err := os.Stat(rel); err == nil {
			return rel
		}
		return ""
	}

	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for i := 0; i <= searchDepth; i++ {
		candidate := filepath.Join(dir, rel)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
