package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS analyses (
	id          UUID PRIMARY KEY,
	target_role TEXT NOT NULL DEFAULT '',
	fit_score   DOUBLE PRECISION NOT NULL DEFAULT 0,
	report      JSONB NOT NULL,
	inputs      JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS analyses_created_at_idx ON analyses (created_at DESC);`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

var _ Repository = (*DB)(nil)

// Connect establishes a connection pool to the database and ensures the schema exists
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{pool: pool}
	if err := db.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the analyses table if it does not exist
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// SaveAnalysis inserts or replaces an analysis
func (db *DB) SaveAnalysis(ctx context.Context, a *Analysis) error {
	prepareSave(a, time.Now().UTC())
	r, err := encodeAnalysis(a)
	if err != nil {
		return err
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO analyses (id, target_role, fit_score, report, inputs, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET target_role = $2, fit_score = $3, report = $4, inputs = $5, updated_at = $7`,
		a.ID, a.TargetRole, r.fitScore, r.reportJSON, r.inputsJSON, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis %s: %w", a.ID, err)
	}
	return nil
}

// GetAnalysis retrieves an analysis by ID
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	var a Analysis
	var reportJSON, inputsJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, target_role, report, inputs, created_at, updated_at
		 FROM analyses WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.TargetRole, &reportJSON, &inputsJSON, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	if err := decodeAnalysis(&a, reportJSON, inputsJSON); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAnalyses retrieves recent analyses with optional filters
func (db *DB) ListAnalyses(ctx context.Context, filters ListFilters) ([]AnalysisSummary, error) {
	query := `SELECT id, target_role, fit_score, created_at FROM analyses WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.TargetRole != "" {
		query += fmt.Sprintf(" AND target_role ILIKE $%d", argNum)
		args = append(args, "%"+filters.TargetRole+"%")
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d", argNum)
	args = append(args, filters.limit())

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	summaries := []AnalysisSummary{}
	for rows.Next() {
		var s AnalysisSummary
		if err := rows.Scan(&s.ID, &s.TargetRole, &s.FitScore, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return summaries, nil
}

// DeleteAnalysis deletes an analysis by ID
func (db *DB) DeleteAnalysis(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
