package testkit

import (
	"context"
	"fmt"
	"sync"

	"causalval/domain/core"
	"causalval/domain/stats"
)

// InMemoryResultRepository is a map-backed ResultRepository for tests and
// runs without a database.
type InMemoryResultRepository struct {
	mu   sync.RWMutex
	runs map[core.RunID]stats.Table
}

// NewInMemoryResultRepository creates an empty repository.
func NewInMemoryResultRepository() *InMemoryResultRepository {
	return &InMemoryResultRepository{runs: make(map[core.RunID]stats.Table)}
}

func (r *InMemoryResultRepository) SaveSummaries(_ context.Context, runID core.RunID, table stats.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := stats.Table{Rows: make([]stats.PlaceboSummary, len(table.Rows))}
	copy(stored.Rows, table.Rows)
	r.runs[runID] = stored
	return nil
}

func (r *InMemoryResultRepository) ListByRun(_ context.Context, runID core.RunID) (stats.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	table, ok := r.runs[runID]
	if !ok {
		return stats.Table{}, fmt.Errorf("run not found: %s", runID)
	}
	out := stats.Table{Rows: make([]stats.PlaceboSummary, len(table.Rows))}
	copy(out.Rows, table.Rows)
	return out, nil
}
