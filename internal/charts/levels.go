package charts

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// namedLevels maps proficiency words to a fraction of the framework scale.
var namedLevels = map[string]float64{
	"foundation":         0.25,
	"basic":              0.25,
	"beginner":           0.25,
	"novice":             0.25,
	"intermediate":       0.5,
	"competent":          0.5,
	"proficient":         0.75,
	"advanced":           0.75,
	"expert":             1.0,
	"highly specialised": 1.0,
	"highly specialized": 1.0,
}

// LevelValue converts a level label to a position on [1, upper].
// The first integer in the label wins ("Level 4" -> 4) and is clamped to the scale;
// proficiency words map to a fraction of upper; anything else sits at the midpoint.
func LevelValue(label string, upper int) int {
	if upper < 1 {
		return 0
	}
	if n, ok := firstInt(label); ok {
		return clamp(n, 1, upper)
	}

	lower := strings.ToLower(strings.Join(strings.Fields(label), " "))
	best := 0.0
	bestLen := 0
	for word, frac := range namedLevels {
		// longest match so "highly specialised" beats any shorter word it contains
		if strings.Contains(lower, word) && (len(word) > bestLen || (len(word) == bestLen && frac > best)) {
			best, bestLen = frac, len(word)
		}
	}
	if bestLen > 0 {
		return clamp(int(math.Round(best*float64(upper))), 1, upper)
	}
	return midpoint(upper)
}

func midpoint(upper int) int {
	return (upper + 1) / 2
}

func firstInt(label string) (int, bool) {
	start := -1
	for i, r := range label {
		if unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return atoi(label[start:i])
		}
	}
	if start >= 0 {
		return atoi(label[start:])
	}
	return 0, false
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
