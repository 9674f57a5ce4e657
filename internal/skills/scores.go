package skills

import "strings"

const (
	// DefaultScore is returned for missing or unrecognized labels.
	DefaultScore = 2
	// MinScore and MaxScore bound every mapped value.
	MinScore = 1
	MaxScore = 4
)

var importanceScores = map[string]int{
	"low":      1,
	"medium":   2,
	"high":     3,
	"critical": 4,
}

var relevanceScores = map[string]int{
	"low":       1,
	"medium":    2,
	"high":      3,
	"very high": 4,
}

// MapImportance maps an importance label (low, medium, high, critical) to 1..4.
// Unrecognized or empty labels map to DefaultScore.
func MapImportance(label string) int {
	score, _ := LookupImportance(label)
	return score
}

// MapRelevance maps a relevance label (low, medium, high, very high) to 1..4.
// Unrecognized or empty labels map to DefaultScore.
func MapRelevance(label string) int {
	score, _ := LookupRelevance(label)
	return score
}

// LookupImportance is MapImportance that also reports whether the label was recognized.
func LookupImportance(label string) (int, bool) {
	return lookup(importanceScores, label)
}

// LookupRelevance is MapRelevance that also reports whether the label was recognized.
func LookupRelevance(label string) (int, bool) {
	return lookup(relevanceScores, label)
}

func lookup(scale map[string]int, label string) (int, bool) {
	if score, ok := scale[normalizeLabel(label)]; ok {
		return score, true
	}
	return DefaultScore, false
}

// normalizeLabel lowercases a label, treats '_' and '-' as spaces and collapses whitespace,
// so "Very_High", "very-high" and "  VERY   high " all read "very high".
func normalizeLabel(label string) string {
	label = strings.ToLower(label)
	label = strings.NewReplacer("_", " ", "-", " ").Replace(label)
	return strings.Join(strings.Fields(label), " ")
}
