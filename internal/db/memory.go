package db

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps analyses in process memory. Rows are stored encoded so callers never
// share slices with the store.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]memoryRow
	now  func() time.Time
}

type memoryRow struct {
	targetRole string
	row
	createdAt time.Time
	updatedAt time.Time
}

var _ Repository = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rows: make(map[uuid.UUID]memoryRow),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Close is a no-op.
func (m *MemoryStore) Close() {}

func (m *MemoryStore) SaveAnalysis(ctx context.Context, a *Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.rows[a.ID]; ok && a.ID != uuid.Nil && a.CreatedAt.IsZero() {
		a.CreatedAt = existing.createdAt
	}
	prepareSave(a, m.now())
	r, err := encodeAnalysis(a)
	if err != nil {
		return err
	}
	m.rows[a.ID] = memoryRow{targetRole: a.TargetRole, row: r, createdAt: a.CreatedAt, updatedAt: a.UpdatedAt}
	return nil
}

func (m *MemoryStore) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	r, ok := m.rows[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	a := &Analysis{ID: id, TargetRole: r.targetRole, CreatedAt: r.createdAt, UpdatedAt: r.updatedAt}
	if err := decodeAnalysis(a, r.reportJSON, r.inputsJSON); err != nil {
		return nil, err
	}
	return a, nil
}

func (m *MemoryStore) ListAnalyses(ctx context.Context, filters ListFilters) ([]AnalysisSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	needle := strings.ToLower(filters.TargetRole)

	m.mu.RLock()
	summaries := make([]AnalysisSummary, 0, len(m.rows))
	for id, r := range m.rows {
		if needle != "" && !strings.Contains(strings.ToLower(r.targetRole), needle) {
			continue
		}
		summaries = append(summaries, AnalysisSummary{ID: id, TargetRole: r.targetRole, FitScore: r.fitScore, CreatedAt: r.createdAt})
	}
	m.mu.RUnlock()

	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
		}
		return summaries[i].ID.String() < summaries[j].ID.String()
	})
	if limit := filters.limit(); len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

func (m *MemoryStore) DeleteAnalysis(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}
