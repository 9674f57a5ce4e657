package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS analyses (
	id          TEXT PRIMARY KEY,
	target_role TEXT NOT NULL DEFAULT '',
	fit_score   REAL NOT NULL DEFAULT 0,
	report      TEXT NOT NULL,
	inputs      TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
)`

// SQLiteStore persists analyses in a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

var _ Repository = (*SQLiteStore)(nil)

// OpenSQLite opens (or creates) the database at path and ensures the schema exists.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("sqlite: mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database handle
func (s *SQLiteStore) Close() {
	_ = s.db.Close()
}

// SaveAnalysis inserts or replaces an analysis
func (s *SQLiteStore) SaveAnalysis(ctx context.Context, a *Analysis) error {
	prepareSave(a, time.Now().UTC())
	r, err := encodeAnalysis(a)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, target_role, fit_score, report, inputs, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET target_role = excluded.target_role, fit_score = excluded.fit_score,
		   report = excluded.report, inputs = excluded.inputs, updated_at = excluded.updated_at`,
		a.ID.String(), a.TargetRole, r.fitScore, string(r.reportJSON), string(r.inputsJSON),
		formatTime(a.CreatedAt), formatTime(a.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save analysis %s: %w", a.ID, err)
	}
	return nil
}

// GetAnalysis retrieves an analysis by ID
func (s *SQLiteStore) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	var (
		a                      Analysis
		rawID                  string
		reportJSON, inputsJSON string
		createdAt, updatedAt   string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, target_role, report, inputs, created_at, updated_at FROM analyses WHERE id = ?`,
		id.String(),
	).Scan(&rawID, &a.TargetRole, &reportJSON, &inputsJSON, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("sqlite: get analysis: %w", err)
	}

	if a.ID, err = uuid.Parse(rawID); err != nil {
		return nil, fmt.Errorf("sqlite: stored id %q: %w", rawID, err)
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if err := decodeAnalysis(&a, []byte(reportJSON), []byte(inputsJSON)); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAnalyses retrieves recent analyses with optional filters
func (s *SQLiteStore) ListAnalyses(ctx context.Context, filters ListFilters) ([]AnalysisSummary, error) {
	query := `SELECT id, target_role, fit_score, created_at FROM analyses`
	args := []any{}
	if filters.TargetRole != "" {
		// LIKE is case-insensitive for ASCII in SQLite.
		query += ` WHERE target_role LIKE ?`
		args = append(args, "%"+filters.TargetRole+"%")
	}
	query += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, filters.limit())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list analyses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summaries := []AnalysisSummary{}
	for rows.Next() {
		var (
			sum       AnalysisSummary
			rawID     string
			createdAt string
		)
		if err := rows.Scan(&rawID, &sum.TargetRole, &sum.FitScore, &createdAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan analysis: %w", err)
		}
		if sum.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("sqlite: stored id %q: %w", rawID, err)
		}
		if sum.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list analyses: %w", err)
	}
	return summaries, nil
}

// DeleteAnalysis deletes an analysis by ID
func (s *SQLiteStore) DeleteAnalysis(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("sqlite: delete analysis: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: delete analysis: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Fixed-width UTC timestamps keep lexical and chronological order identical.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: stored timestamp %q: %w", s, err)
	}
	return t, nil
}
