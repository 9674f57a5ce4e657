// Package skills reconciles framework-required skills with gap and strength assertions
// into a single registry and maps categorical labels onto numeric scores.
package skills

import (
	"strings"

	"github.com/jonathan/career-pathway/internal/types"
)

// Source constants identify which record stream produced a diagnostic.
const (
	SourceFramework = "framework"
	SourceGap       = "gap"
	SourceStrength  = "strength"
)

// Reconcile merges the three record streams into a registry. Framework records seed the
// registry, then every gap is applied, then every strength, so a skill asserted as both a gap
// and a strength ends up held and validated while keeping its gap annotation.
func Reconcile(
	frameworkSkills []types.FrameworkSkillRecord,
	gaps []types.GapRecord,
	strengths []types.StrengthRecord,
) *Registry {
	reg, _ := ReconcileWithDiagnostics(frameworkSkills, gaps, strengths)
	return reg
}

// ReconcileInputs is Reconcile over a SkillInputs bundle.
func ReconcileInputs(in types.SkillInputs) (*Registry, Diagnostics) {
	return ReconcileWithDiagnostics(in.FrameworkSkills, in.Gaps, in.Strengths)
}

// ReconcileWithDiagnostics is Reconcile that also reports unknown labels, ambiguous matches
// and skipped records. Diagnostics never change the registry.
func ReconcileWithDiagnostics(
	frameworkSkills []types.FrameworkSkillRecord,
	gaps []types.GapRecord,
	strengths []types.StrengthRecord,
) (*Registry, Diagnostics) {
	reg := NewRegistry()
	var diags Diagnostics

	for i, rec := range frameworkSkills {
		seedFrameworkSkill(reg, &diags, i, rec)
	}
	for i, rec := range gaps {
		applyGap(reg, &diags, i, rec)
	}
	for i, rec := range strengths {
		applyStrength(reg, &diags, i, rec)
	}

	return reg, diags
}

func seedFrameworkSkill(reg *Registry, diags *Diagnostics, i int, rec types.FrameworkSkillRecord) {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		diags.add(KindBlankName, SourceFramework, i, rec.Name, rec.Framework)
		return
	}
	framework := rec.Framework
	if strings.TrimSpace(framework) == "" {
		framework = types.GeneralFramework
	}
	framework = reg.canonicalFramework(framework)

	key := NewKey(framework, name)
	if reg.lookup(key) != nil {
		// first catalog record wins
		diags.add(KindAmbiguousMatch, SourceFramework, i, name, framework)
		return
	}
	reg.insert(&types.UnifiedSkillEntry{
		Key:       key,
		Name:      name,
		Framework: framework,
		Level:     strings.TrimSpace(rec.Level),
		Required:  true,
	})
}

func applyGap(reg *Registry, diags *Diagnostics, i int, rec types.GapRecord) {
	name := strings.TrimSpace(rec.Skill)
	if name == "" {
		diags.add(KindBlankName, SourceGap, i, rec.Skill, rec.Framework)
		return
	}
	importance, known := LookupImportance(rec.Importance)
	if !known {
		diags.add(KindUnknownLabel, SourceGap, i, name, rec.Importance)
	}

	entry := findEntry(reg, diags, SourceGap, i, name, rec.Framework)
	if entry == nil {
		framework := rec.Framework
		if strings.TrimSpace(framework) == "" {
			framework = types.GeneralFramework
		}
		framework = reg.canonicalFramework(framework)
		entry = &types.UnifiedSkillEntry{
			Key:       NewKey(framework, name),
			Name:      name,
			Framework: framework,
		}
		reg.insert(entry)
	}

	entry.GapDescription = rec.Description
	entry.ImportanceValue = intPtr(importance)
	entry.Required = true
	entry.UserHas = false
}

func applyStrength(reg *Registry, diags *Diagnostics, i int, rec types.StrengthRecord) {
	name := strings.TrimSpace(rec.Skill)
	if name == "" {
		diags.add(KindBlankName, SourceStrength, i, rec.Skill, rec.Framework)
		return
	}
	relevance, known := LookupRelevance(rec.Relevance)
	if !known {
		diags.add(KindUnknownLabel, SourceStrength, i, name, rec.Relevance)
	}

	entry := findEntry(reg, diags, SourceStrength, i, name, rec.Framework)
	if entry == nil {
		framework := rec.Framework
		if strings.TrimSpace(framework) == "" {
			framework = types.GeneralFramework
		}
		framework = reg.canonicalFramework(framework)
		entry = &types.UnifiedSkillEntry{
			Key:       NewKey(framework, name),
			Name:      name,
			Framework: framework,
			Level:     strings.TrimSpace(rec.Level),
			Required:  false,
		}
		reg.insert(entry)
	}

	entry.StrengthDescription = rec.Description
	entry.RelevanceValue = intPtr(relevance)
	entry.UserLevel = strings.TrimSpace(rec.Level)
	entry.UserHas = true
	entry.Validated = true
}

// findEntry applies the shared lookup rule for gaps and strengths: a declared framework
// constrains the match to that framework; with none declared the first entry with the
// same name in any framework is used.
func findEntry(reg *Registry, diags *Diagnostics, source string, i int, name, framework string) *types.UnifiedSkillEntry {
	if strings.TrimSpace(framework) != "" {
		canonical, ok := reg.frameworks[frameworkID(framework)]
		if !ok {
			return nil
		}
		return reg.lookup(NewKey(canonical, name))
	}

	matches := reg.lookupByName(name)
	if len(matches) == 0 {
		return nil
	}
	if len(matches) > 1 {
		diags.add(KindAmbiguousMatch, source, i, name, matches[0].Framework)
	}
	return matches[0]
}

func intPtr(v int) *int {
	return &v
}
