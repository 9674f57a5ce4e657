// Package db provides persistence for career analyses behind a Repository interface,
// with PostgreSQL, SQLite and in-memory implementations.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/career-pathway/internal/types"
)

// ErrNotFound is returned when an analysis ID has no stored row.
var ErrNotFound = errors.New("analysis not found")

// Repository stores analyses. Implementations are safe for concurrent use.
type Repository interface {
	// SaveAnalysis inserts or replaces a. A nil ID is assigned a new UUID and the
	// timestamps are filled in on a.
	SaveAnalysis(ctx context.Context, a *Analysis) error
	GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error)
	// ListAnalyses returns summaries newest first.
	ListAnalyses(ctx context.Context, filters ListFilters) ([]AnalysisSummary, error)
	DeleteAnalysis(ctx context.Context, id uuid.UUID) error
	Close()
}

// Open picks the implementation from the configured locations: PostgreSQL when databaseURL is
// set, SQLite when sqlitePath is set, memory otherwise.
func Open(ctx context.Context, databaseURL, sqlitePath string) (Repository, error) {
	switch {
	case databaseURL != "":
		return Connect(ctx, databaseURL)
	case sqlitePath != "":
		return OpenSQLite(ctx, sqlitePath)
	default:
		return NewMemoryStore(), nil
	}
}

// prepareSave assigns the ID and timestamps shared by every implementation.
func prepareSave(a *Analysis, now time.Time) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
}

// row is the column-level encoding of an Analysis.
type row struct {
	reportJSON []byte
	inputsJSON []byte
	fitScore   float64
}

func encodeAnalysis(a *Analysis) (row, error) {
	reportJSON, err := json.Marshal(a.Report)
	if err != nil {
		return row{}, fmt.Errorf("failed to marshal report: %w", err)
	}
	inputsJSON, err := json.Marshal(a.Inputs)
	if err != nil {
		return row{}, fmt.Errorf("failed to marshal inputs: %w", err)
	}
	return row{
		reportJSON: reportJSON,
		inputsJSON: inputsJSON,
		fitScore:   a.Report.ExecutiveSummary.FitScore.Score,
	}, nil
}

func decodeAnalysis(a *Analysis, reportJSON, inputsJSON []byte) error {
	if err := json.Unmarshal(reportJSON, &a.Report); err != nil {
		return fmt.Errorf("failed to decode stored report: %w", err)
	}
	if err := json.Unmarshal(inputsJSON, &a.Inputs); err != nil {
		return fmt.Errorf("failed to decode stored inputs: %w", err)
	}
	normalizeInputs(&a.Inputs)
	return nil
}

// normalizeInputs replaces nil streams with empty ones so stored and fresh analyses encode alike.
func normalizeInputs(in *types.SkillInputs) {
	if in.FrameworkSkills == nil {
		in.FrameworkSkills = []types.FrameworkSkillRecord{}
	}
	if in.Gaps == nil {
		in.Gaps = []types.GapRecord{}
	}
	if in.Strengths == nil {
		in.Strengths = []types.StrengthRecord{}
	}
}
