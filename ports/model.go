package ports

import (
	"context"

	"causalval/domain/dataset"
	"causalval/domain/effect"
)

// ModelPort is the causal-effect estimator contract. The estimator itself
// is an external collaborator; the placebo engine only needs a name for the
// aggregation key and a single evaluation capability.
type ModelPort interface {
	// Name identifies the model in result keys and output tables.
	Name() string

	// Evaluate fits the estimator to a panel with a declared intervention
	// point and returns its effect estimate. Errors propagate verbatim to
	// the caller of the placebo test.
	Evaluate(ctx context.Context, ds *dataset.Dataset) (effect.Result, error)
}
