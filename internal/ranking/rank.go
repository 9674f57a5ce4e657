// Package ranking orders reconciled skills by priority for top-N selection.
package ranking

import (
	"sort"

	"github.com/jonathan/career-pathway/internal/skills"
	"github.com/jonathan/career-pathway/internal/types"
)

// floorPriority is the priority of an entry with neither an importance nor a relevance value.
const floorPriority = 1

// RankSkills returns at most n entries ordered by priority, highest first:
// gap entries before non-gap entries, then by importance value, falling back to relevance
// value and then to floorPriority. Ties keep input order. The input slice is not modified.
func RankSkills(entries []types.UnifiedSkillEntry, n int) []types.UnifiedSkillEntry {
	if n <= 0 || len(entries) == 0 {
		return []types.UnifiedSkillEntry{}
	}

	ranked := make([]types.UnifiedSkillEntry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		gi, gj := ranked[i].IsGap(), ranked[j].IsGap()
		if gi != gj {
			return gi
		}
		return Priority(&ranked[i]) > Priority(&ranked[j])
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Priority returns the numeric priority used as the second sort key.
func Priority(entry *types.UnifiedSkillEntry) int {
	switch {
	case entry.ImportanceValue != nil:
		return *entry.ImportanceValue
	case entry.RelevanceValue != nil:
		return *entry.RelevanceValue
	default:
		return floorPriority
	}
}

// TopN scopes the registry to one framework and ranks it.
func TopN(reg *skills.Registry, framework string, n int) types.RankedSkills {
	return types.RankedSkills{
		Framework: framework,
		Skills:    RankSkills(reg.Scope(framework), n),
	}
}
