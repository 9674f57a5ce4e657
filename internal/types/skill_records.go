// Package types provides type definitions for structured data used throughout the career-pathway system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// GeneralFramework is the framework assigned to gap/strength skills that declare no framework
// and match no catalog entry.
const GeneralFramework = "General"

// FrameworkSkillRecord is a skill a framework declares relevant to a role.
type FrameworkSkillRecord struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Framework   string `json:"framework" yaml:"framework" validate:"required"`
	Level       string `json:"level" yaml:"level"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// GapRecord asserts that a skill is required but not held at the required level.
type GapRecord struct {
	Skill       string `json:"skill" validate:"required"`
	Importance  string `json:"importance"`
	Description string `json:"description,omitempty"`
	Framework   string `json:"framework,omitempty"`
}

// StrengthRecord asserts that the user holds and has validated a skill.
type StrengthRecord struct {
	Skill       string `json:"skill" validate:"required"`
	Level       string `json:"level"`
	Relevance   string `json:"relevance"`
	Description string `json:"description,omitempty"`
	Framework   string `json:"framework,omitempty"`
}

// SkillInputs bundles the three independently sourced record streams for one analysis.
type SkillInputs struct {
	FrameworkSkills []FrameworkSkillRecord `json:"framework_skills" validate:"dive"`
	Gaps            []GapRecord            `json:"gaps" validate:"dive"`
	Strengths       []StrengthRecord       `json:"strengths" validate:"dive"`
}

// SkillKey identifies a unified skill entry: framework plus lowercased skill name.
type SkillKey struct {
	Framework string `json:"framework"`
	Name      string `json:"name"`
}

// UnifiedSkillEntry is the reconciled view of one skill within one framework.
type UnifiedSkillEntry struct {
	Key                 SkillKey `json:"key"`
	Name                string   `json:"name"`
	Framework           string   `json:"framework"`
	Level               string   `json:"level"`
	UserLevel           string   `json:"user_level,omitempty"`
	Required            bool     `json:"required"`
	Validated           bool     `json:"validated"`
	UserHas             bool     `json:"user_has"`
	ImportanceValue     *int     `json:"importance_value,omitempty"`
	RelevanceValue      *int     `json:"relevance_value,omitempty"`
	GapDescription      string   `json:"gap_description,omitempty"`
	StrengthDescription string   `json:"strength_description,omitempty"`
}

// IsGap reports whether the entry carries a gap description. A gap record with an empty
// description still sets ImportanceValue but does not mark the entry as a gap.
func (e *UnifiedSkillEntry) IsGap() bool {
	return e.GapDescription != ""
}

// RankedSkills is an ordered, framework-scoped top-N skill list.
type RankedSkills struct {
	Framework string              `json:"framework"`
	Skills    []UnifiedSkillEntry `json:"skills"`
}
