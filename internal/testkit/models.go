package testkit

import (
	"context"
	"errors"
	"sync"

	"gonum.org/v1/gonum/mat"

	"causalval/domain/dataset"
	"causalval/domain/effect"
)

// DiffInMeansModel is a trivial estimator standing in for an external
// causal model: the observed outcome is the post-period treated mean, the
// counterfactual is the post-period control mean.
type DiffInMeansModel struct{}

func (DiffInMeansModel) Name() string { return "diff-in-means" }

func (DiffInMeansModel) Evaluate(_ context.Context, ds *dataset.Dataset) (effect.Result, error) {
	return effect.Result{
		Model: "diff-in-means",
		Effect: effect.Effect{
			Observed:       matrixMean(ds.PostTreated()),
			Counterfactual: matrixMean(ds.PostControl()),
		},
	}, nil
}

func matrixMean(m *mat.Dense) float64 {
	rows, cols := m.Dims()
	sum := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			sum += m.At(i, j)
		}
	}
	return sum / float64(rows*cols)
}

// ErrModelBroken is the failure injected by FailingModel.
var ErrModelBroken = errors.New("model solver did not converge")

// FailingModel fails after a configurable number of successful calls.
// FailAfter 0 fails immediately.
type FailingModel struct {
	FailAfter int
	calls     int
}

func (m *FailingModel) Name() string { return "failing-model" }

func (m *FailingModel) Evaluate(_ context.Context, _ *dataset.Dataset) (effect.Result, error) {
	m.calls++
	if m.calls > m.FailAfter {
		return effect.Result{}, ErrModelBroken
	}
	return effect.Result{Model: m.Name()}, nil
}

// SequenceModel replays a fixed sequence of percentage effects, one per
// call. Useful for driving the aggregation with known numbers.
type SequenceModel struct {
	ModelName string
	Percents  []float64
	mu        sync.Mutex
	next      int
}

func (m *SequenceModel) Name() string { return m.ModelName }

func (m *SequenceModel) Evaluate(_ context.Context, _ *dataset.Dataset) (effect.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.next >= len(m.Percents) {
		return effect.Result{}, errors.New("sequence model exhausted")
	}
	p := m.Percents[m.next]
	m.next++
	return effect.Result{
		Model: m.ModelName,
		Effect: effect.Effect{
			Observed:       100 + p,
			Counterfactual: 100,
		},
	}, nil
}

// ConstantEffectModel reports a fixed percentage effect regardless of
// input, via an effect whose counterfactual is pinned at 100.
type ConstantEffectModel struct {
	ModelName string
	Percent   float64
}

func (m ConstantEffectModel) Name() string { return m.ModelName }

func (m ConstantEffectModel) Evaluate(_ context.Context, _ *dataset.Dataset) (effect.Result, error) {
	return effect.Result{
		Model: m.ModelName,
		Effect: effect.Effect{
			Observed:       100 + m.Percent,
			Counterfactual: 100,
		},
	}, nil
}
