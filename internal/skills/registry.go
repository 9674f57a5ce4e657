package skills

import (
	"strings"

	"github.com/jonathan/career-pathway/internal/types"
)

// Registry is the reconciled set of unified skill entries keyed by (framework, lowercased name).
// Iteration order is insertion order, which keeps every derived view deterministic.
type Registry struct {
	entries []*types.UnifiedSkillEntry
	index   map[types.SkillKey]int
	// frameworks maps a lowercased framework tag to the first spelling seen.
	frameworks map[string]string
	order      []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		index:      make(map[types.SkillKey]int),
		frameworks: make(map[string]string),
	}
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns copies of all entries in insertion order.
func (r *Registry) Entries() []types.UnifiedSkillEntry {
	out := make([]types.UnifiedSkillEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, cloneEntry(e))
	}
	return out
}

// Map returns the registry as a key -> entry mapping.
func (r *Registry) Map() map[types.SkillKey]types.UnifiedSkillEntry {
	out := make(map[types.SkillKey]types.UnifiedSkillEntry, len(r.entries))
	for _, e := range r.entries {
		out[e.Key] = cloneEntry(e)
	}
	return out
}

// Get looks up an entry by framework and case-insensitive name.
func (r *Registry) Get(framework, name string) (types.UnifiedSkillEntry, bool) {
	canonical, ok := r.frameworks[frameworkID(framework)]
	if !ok {
		return types.UnifiedSkillEntry{}, false
	}
	idx, ok := r.index[NewKey(canonical, name)]
	if !ok {
		return types.UnifiedSkillEntry{}, false
	}
	return cloneEntry(r.entries[idx]), true
}

// Scope returns the entries of one framework in insertion order.
// The framework is matched case-insensitively.
func (r *Registry) Scope(framework string) []types.UnifiedSkillEntry {
	id := frameworkID(framework)
	out := make([]types.UnifiedSkillEntry, 0)
	for _, e := range r.entries {
		if frameworkID(e.Framework) == id {
			out = append(out, cloneEntry(e))
		}
	}
	return out
}

// Frameworks returns the canonical framework tags in first-seen order.
func (r *Registry) Frameworks() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// canonicalFramework returns the display spelling registered for framework,
// registering framework itself when it is new.
func (r *Registry) canonicalFramework(framework string) string {
	framework = strings.TrimSpace(framework)
	id := frameworkID(framework)
	if canonical, ok := r.frameworks[id]; ok {
		return canonical
	}
	r.frameworks[id] = framework
	r.order = append(r.order, framework)
	return framework
}

func (r *Registry) lookup(key types.SkillKey) *types.UnifiedSkillEntry {
	if idx, ok := r.index[key]; ok {
		return r.entries[idx]
	}
	return nil
}

// lookupByName returns every entry whose name matches, across frameworks, in insertion order.
func (r *Registry) lookupByName(name string) []*types.UnifiedSkillEntry {
	want := nameID(name)
	var matches []*types.UnifiedSkillEntry
	for _, e := range r.entries {
		if e.Key.Name == want {
			matches = append(matches, e)
		}
	}
	return matches
}

func (r *Registry) insert(entry *types.UnifiedSkillEntry) {
	r.index[entry.Key] = len(r.entries)
	r.entries = append(r.entries, entry)
}

// NewKey builds the composite key for a skill. The framework is used as given
// and the name is trimmed and lowercased.
func NewKey(framework, name string) types.SkillKey {
	return types.SkillKey{Framework: strings.TrimSpace(framework), Name: nameID(name)}
}

func nameID(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func frameworkID(framework string) string {
	return strings.ToLower(strings.Join(strings.Fields(framework), " "))
}

func cloneEntry(e *types.UnifiedSkillEntry) types.UnifiedSkillEntry {
	out := *e
	if e.ImportanceValue != nil {
		v := *e.ImportanceValue
		out.ImportanceValue = &v
	}
	if e.RelevanceValue != nil {
		v := *e.RelevanceValue
		out.RelevanceValue = &v
	}
	return out
}
