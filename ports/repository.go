package ports

import (
	"context"

	"causalval/domain/core"
	"causalval/domain/stats"
)

// ResultRepository persists aggregated placebo-test summaries keyed by the
// run that produced them.
type ResultRepository interface {
	// SaveSummaries stores every row of a summary table under runID.
	SaveSummaries(ctx context.Context, runID core.RunID, table stats.Table) error

	// ListByRun returns the stored summaries for a run.
	ListByRun(ctx context.Context, runID core.RunID) (stats.Table, error)
}
