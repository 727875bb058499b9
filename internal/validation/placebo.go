package validation

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"causalval/domain/core"
	"causalval/domain/dataset"
	"causalval/domain/effect"
	"causalval/internal"
	"causalval/ports"
)

// Progress task names
const (
	taskDatasets = "datasets"
	taskModels   = "models"
	taskUnits    = "control units"
)

// PlaceboTest runs every model against every dataset once per control
// unit, each time on a fresh leave-one-out placebo view. A model failure
// aborts the whole run: dropping failed trials would bias the aggregate.
type PlaceboTest struct {
	models   []ports.ModelPort
	datasets []*dataset.Dataset
	progress ports.ProgressPort
	logger   *internal.Logger
}

// Option configures a PlaceboTest.
type Option func(*PlaceboTest)

// WithProgress attaches a progress sink.
func WithProgress(p ports.ProgressPort) Option {
	return func(pt *PlaceboTest) { pt.progress = p }
}

// WithLogger attaches a logger.
func WithLogger(l *internal.Logger) Option {
	return func(pt *PlaceboTest) { pt.logger = l }
}

// NewPlaceboTest validates the model and dataset collections up front:
// both non-empty, names unique within each collection.
func NewPlaceboTest(models []ports.ModelPort, datasets []*dataset.Dataset, opts ...Option) (*PlaceboTest, error) {
	if len(models) == 0 {
		return nil, core.NewInvalidConfigurationError("models", "at least one model required")
	}
	if len(datasets) == 0 {
		return nil, core.NewInvalidConfigurationError("datasets", "at least one dataset required")
	}

	modelNames := make(map[string]bool, len(models))
	for _, m := range models {
		if m.Name() == "" {
			return nil, core.NewInvalidConfigurationError("models", "model name must not be empty")
		}
		if modelNames[m.Name()] {
			return nil, core.NewInvalidConfigurationError("models", fmt.Sprintf("duplicate model name %q", m.Name()))
		}
		modelNames[m.Name()] = true
	}

	datasetNames := make(map[string]bool, len(datasets))
	for _, ds := range datasets {
		if ds.Name() == "" {
			return nil, core.NewInvalidConfigurationError("datasets", "dataset name must not be empty")
		}
		if datasetNames[ds.Name()] {
			return nil, core.NewInvalidConfigurationError("datasets", fmt.Sprintf("duplicate dataset name %q", ds.Name()))
		}
		datasetNames[ds.Name()] = true
	}

	pt := &PlaceboTest{
		models:   models,
		datasets: datasets,
		progress: ports.NopProgress{},
		logger:   internal.DefaultLogger,
	}
	for _, opt := range opts {
		opt(pt)
	}
	return pt, nil
}

// Execute evaluates every (dataset, model, control unit) triple
// sequentially and collects per-pair effect lists.
func (pt *PlaceboTest) Execute(ctx context.Context) (*PlaceboTestResult, error) {
	return pt.run(ctx, 1)
}

// ExecuteParallel runs the per-unit evaluations of each pair concurrently,
// bounded by workers. Results are identical to sequential execution: each
// unit writes its own slot and seeded parameters do not depend on call
// order.
func (pt *PlaceboTest) ExecuteParallel(ctx context.Context, workers int) (*PlaceboTestResult, error) {
	if workers < 1 {
		return nil, core.NewInvalidConfigurationError("workers", "worker count must be at least 1")
	}
	return pt.run(ctx, workers)
}

func (pt *PlaceboTest) run(ctx context.Context, workers int) (*PlaceboTestResult, error) {
	totalUnits := 0
	for _, ds := range pt.datasets {
		totalUnits += ds.NUnits()
	}
	pt.progress.Begin(taskDatasets, len(pt.datasets))
	pt.progress.Begin(taskModels, len(pt.datasets)*len(pt.models))
	pt.progress.Begin(taskUnits, totalUnits*len(pt.models))

	result := newPlaceboTestResult()
	for _, ds := range pt.datasets {
		pt.progress.Advance(taskDatasets, 1)
		for _, model := range pt.models {
			pt.logger.Debug("placebo trial: model=%s dataset=%s units=%d", model.Name(), ds.Name(), ds.NUnits())
			effects, err := pt.runPair(ctx, model, ds, workers)
			if err != nil {
				return nil, err
			}
			pt.progress.Advance(taskModels, 1)
			result.add(PairKey{Model: model.Name(), Dataset: ds.Name()}, effects)
		}
	}
	return result, nil
}

// runPair evaluates one (model, dataset) pair over every control unit.
func (pt *PlaceboTest) runPair(ctx context.Context, model ports.ModelPort, ds *dataset.Dataset, workers int) ([]effect.Result, error) {
	n := ds.NUnits()
	results := make([]effect.Result, n)

	if workers == 1 {
		for i := 0; i < n; i++ {
			res, err := pt.evaluateUnit(ctx, model, ds, i)
			if err != nil {
				return nil, err
			}
			results[i] = res
			pt.progress.Advance(taskUnits, 1)
		}
		return results, nil
	}

	sem := semaphore.NewWeighted(int64(workers))
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		i := i
		g.Go(func() error {
			defer sem.Release(1)
			res, err := pt.evaluateUnit(gctx, model, ds, i)
			if err != nil {
				return err
			}
			results[i] = res
			pt.progress.Advance(taskUnits, 1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// evaluateUnit builds a fresh placebo view for unit i and runs one model
// call on it.
func (pt *PlaceboTest) evaluateUnit(ctx context.Context, model ports.ModelPort, ds *dataset.Dataset, i int) (effect.Result, error) {
	view, err := ds.ToPlaceboView(i)
	if err != nil {
		return effect.Result{}, err
	}
	res, err := model.Evaluate(ctx, view)
	if err != nil {
		return effect.Result{}, core.NewModelEvaluationError(model.Name(), ds.Name(), err)
	}
	return res, nil
}
