package report

import (
	"strings"

	"github.com/jonathan/career-pathway/internal/types"
)

// SkillRecords extracts the gap and strength streams from a normalized report's
// skillsAssessment section. Entries without a skill name are skipped.
func SkillRecords(rep types.NormalizedReport) ([]types.GapRecord, []types.StrengthRecord) {
	gaps := make([]types.GapRecord, 0, len(rep.SkillsAssessment.Gaps))
	for _, g := range rep.SkillsAssessment.Gaps {
		if strings.TrimSpace(g.Skill) == "" {
			continue
		}
		gaps = append(gaps, types.GapRecord(g))
	}

	strengths := make([]types.StrengthRecord, 0, len(rep.SkillsAssessment.Strengths))
	for _, s := range rep.SkillsAssessment.Strengths {
		if strings.TrimSpace(s.Skill) == "" {
			continue
		}
		strengths = append(strengths, types.StrengthRecord(s))
	}

	return gaps, strengths
}

// FrameworkSkills returns the skills named in the frameworkAlignment section, tagged with the
// framework each alignment block declares.
func FrameworkSkills(rep types.NormalizedReport) []types.FrameworkSkillRecord {
	fa := rep.FrameworkAlignment
	out := make([]types.FrameworkSkillRecord, 0, len(fa.SFIA.Skills)+len(fa.DigComp.Skills))
	out = appendAlignment(out, fa.SFIA.Framework, fa.SFIA.Skills)
	out = appendAlignment(out, fa.DigComp.Framework, fa.DigComp.Skills)
	return out
}

func appendAlignment(out []types.FrameworkSkillRecord, framework string, skills []types.AlignmentSkill) []types.FrameworkSkillRecord {
	for _, s := range skills {
		if strings.TrimSpace(s.Name) == "" {
			continue
		}
		out = append(out, types.FrameworkSkillRecord{
			Name:        s.Name,
			Framework:   framework,
			Level:       s.Level,
			Description: s.Description,
		})
	}
	return out
}

// Inputs bundles the report's framework, gap and strength streams.
func Inputs(rep types.NormalizedReport) types.SkillInputs {
	gaps, strengths := SkillRecords(rep)
	return types.SkillInputs{
		FrameworkSkills: FrameworkSkills(rep),
		Gaps:            gaps,
		Strengths:       strengths,
	}
}
