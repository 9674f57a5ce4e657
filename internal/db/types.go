package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/career-pathway/internal/types"
)

// Analysis is a persisted career analysis: the normalized report plus the skill streams it
// was reconciled from. Registries and projections are derived data and are never stored.
type Analysis struct {
	ID         uuid.UUID              `json:"id"`
	TargetRole string                 `json:"target_role"`
	Report     types.NormalizedReport `json:"report"`
	Inputs     types.SkillInputs      `json:"inputs"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// AnalysisSummary is a lightweight view of an analysis for listing
type AnalysisSummary struct {
	ID         uuid.UUID `json:"id"`
	TargetRole string    `json:"target_role"`
	FitScore   float64   `json:"fit_score"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListFilters holds optional filters for listing analyses
type ListFilters struct {
	TargetRole string
	Limit      int
}

// DefaultListLimit applies when ListFilters.Limit is zero or negative.
const DefaultListLimit = 50

func (f ListFilters) limit() int {
	if f.Limit <= 0 {
		return DefaultListLimit
	}
	return f.Limit
}
