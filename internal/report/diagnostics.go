package report

// DefectKind classifies why a default was substituted.
type DefectKind string

// Defect kinds.
const (
	// DefectMalformedInput means the document was not an object at the top level.
	DefectMalformedInput DefectKind = "malformed_input"
	// DefectMissing means the field was absent or null.
	DefectMissing DefectKind = "missing"
	// DefectWrongKind means the field held a value of the wrong kind.
	DefectWrongKind DefectKind = "wrong_kind"
	// DefectDroppedElement means a list element of the wrong kind was removed.
	DefectDroppedElement DefectKind = "dropped_element"
)

// Defect is one defaulted or dropped position, e.g. "executiveSummary.fitScore.score".
type Defect struct {
	Path string     `json:"path"`
	Kind DefectKind `json:"kind"`
}

// Diagnostics lists defects in walk order.
type Diagnostics []Defect

func (d *Diagnostics) add(path string, kind DefectKind) {
	*d = append(*d, Defect{Path: path, Kind: kind})
}

// Count returns the number of defects of a kind.
func (d Diagnostics) Count(kind DefectKind) int {
	n := 0
	for _, defect := range d {
		if defect.Kind == kind {
			n++
		}
	}
	return n
}

// Malformed reports whether the whole document was replaced by defaults.
func (d Diagnostics) Malformed() bool {
	return d.Count(DefectMalformedInput) > 0
}

// Clean reports whether the document already matched the contract.
func (d Diagnostics) Clean() bool {
	return len(d) == 0
}
