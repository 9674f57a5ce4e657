package charts

import (
	"strings"

	"github.com/jonathan/career-pathway/internal/types"
)

// Framework tags with built-in scales.
const (
	FrameworkSFIA    = "SFIA 9"
	FrameworkDigComp = "DigComp 2.2"
)

// Scales maps a framework tag to the upper bound of its level axis.
type Scales map[string]int

// DefaultScales returns the built-in scales: SFIA 9 has seven responsibility levels,
// DigComp 2.2 eight proficiency levels, and General skills use a five-point scale.
func DefaultScales() Scales {
	return Scales{
		FrameworkSFIA:          7,
		FrameworkDigComp:       8,
		types.GeneralFramework: 5,
	}
}

// Max returns the scale for a framework, matched case-insensitively. When several keys differ
// only in case, an exact match wins, then the lexically smallest key.
func (s Scales) Max(framework string) (int, error) {
	want := strings.TrimSpace(framework)
	key, found := "", false
	for name := range s {
		trimmed := strings.TrimSpace(name)
		if !strings.EqualFold(trimmed, want) {
			continue
		}
		if trimmed == want {
			key, found = name, true
			break
		}
		if !found || name < key {
			key, found = name, true
		}
	}
	if !found {
		return 0, &ScaleError{Framework: framework}
	}
	if upper := s[key]; upper >= 1 {
		return upper, nil
	}
	return 0, &ScaleError{Framework: framework, Max: s[key], Configured: true}
}

// Merge returns a copy of s overlaid with other.
func (s Scales) Merge(other Scales) Scales {
	out := make(Scales, len(s)+len(other))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range other {
		for existing := range out {
			if strings.EqualFold(existing, k) && existing != k {
				delete(out, existing)
			}
		}
		out[k] = v
	}
	return out
}
