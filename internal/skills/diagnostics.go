package skills

import "fmt"

// DiagnosticKind classifies a non-fatal reconciliation finding.
type DiagnosticKind string

// Diagnostic kinds. None of them stop reconciliation.
const (
	// KindUnknownLabel marks an importance/relevance label that fell back to DefaultScore.
	KindUnknownLabel DiagnosticKind = "unknown_label"
	// KindAmbiguousMatch marks a lookup where more than one entry could match; the first wins.
	KindAmbiguousMatch DiagnosticKind = "ambiguous_match"
	// KindBlankName marks a record skipped because its skill name is empty.
	KindBlankName DiagnosticKind = "blank_name"
)

// Diagnostic describes one finding. Detail holds the offending label for unknown labels
// and the chosen framework for ambiguous matches.
type Diagnostic struct {
	Kind   DiagnosticKind `json:"kind"`
	Source string         `json:"source"`
	Index  int            `json:"index"`
	Skill  string         `json:"skill"`
	Detail string         `json:"detail,omitempty"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s[%d] %q (%s)", d.Kind, d.Source, d.Index, d.Skill, d.Detail)
}

// Diagnostics is an ordered list of findings.
type Diagnostics []Diagnostic

func (d *Diagnostics) add(kind DiagnosticKind, source string, index int, skill, detail string) {
	*d = append(*d, Diagnostic{Kind: kind, Source: source, Index: index, Skill: skill, Detail: detail})
}

// Count returns how many findings of the given kind were recorded.
func (d Diagnostics) Count(kind DiagnosticKind) int {
	n := 0
	for _, diag := range d {
		if diag.Kind == kind {
			n++
		}
	}
	return n
}
