package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"causalval/domain/core"
	"causalval/domain/stats"
	"causalval/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS placebo_results (
	id         TEXT PRIMARY KEY,
	run_id     TEXT NOT NULL,
	model      TEXT NOT NULL,
	dataset    TEXT NOT NULL,
	effect     DOUBLE PRECISION NOT NULL,
	std_dev    DOUBLE PRECISION NOT NULL,
	std_err    DOUBLE PRECISION NOT NULL,
	p_value    DOUBLE PRECISION NOT NULL,
	n_units    INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_placebo_results_run ON placebo_results (run_id);
`

// Connect opens a postgres connection pool and verifies it.
func Connect(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

// resultRepository implements the ResultRepository interface
type resultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a new placebo result repository
func NewResultRepository(db *sqlx.DB) ports.ResultRepository {
	return &resultRepository{db: db}
}

// EnsureSchema creates the results table if it does not exist.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure placebo_results schema: %w", err)
	}
	return nil
}

// SaveSummaries inserts every row of the table under runID.
func (r *resultRepository) SaveSummaries(ctx context.Context, runID core.RunID, table stats.Table) error {
	query := `INSERT INTO placebo_results (
		id, run_id, model, dataset, effect, std_dev, std_err, p_value, n_units
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for _, row := range table.Rows {
		_, err := r.db.ExecContext(ctx, query,
			core.RecordID(core.NewID()), runID, row.Model, row.Dataset,
			row.Effect, row.StdDev, row.StdErr, row.PValue, row.NUnits,
		)
		if err != nil {
			return fmt.Errorf("failed to save summary for %s/%s: %w", row.Model, row.Dataset, err)
		}
	}
	return nil
}

// ListByRun returns the stored summaries for a run in insertion order.
func (r *resultRepository) ListByRun(ctx context.Context, runID core.RunID) (stats.Table, error) {
	query := `SELECT model, dataset, effect, std_dev, std_err, p_value, n_units
	FROM placebo_results
	WHERE run_id = $1
	ORDER BY id`

	var rows []stats.PlaceboSummary
	if err := r.db.SelectContext(ctx, &rows, query, runID); err != nil {
		return stats.Table{}, fmt.Errorf("failed to list summaries for run %s: %w", runID, err)
	}
	return stats.Table{Rows: rows}, nil
}
