package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"causalval/domain/core"
	"causalval/domain/dataset"
	"causalval/internal/testkit"
	"causalval/ports"
)

func simulate(t *testing.T, name string, nControl int, seed uint64) *dataset.Dataset {
	t.Helper()
	cfg := testkit.DefaultSimulationConfig()
	cfg.NControl = nControl
	cfg.Seed = seed
	ds, err := testkit.Simulate(name, cfg)
	require.NoError(t, err)
	return ds
}

func TestNewPlaceboTestValidation(t *testing.T) {
	ds := simulate(t, "a", 3, 1)
	model := testkit.DiffInMeansModel{}

	_, err := NewPlaceboTest(nil, []*dataset.Dataset{ds})
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)

	_, err = NewPlaceboTest([]ports.ModelPort{model}, nil)
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)

	_, err = NewPlaceboTest([]ports.ModelPort{model, model}, []*dataset.Dataset{ds})
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)

	other := simulate(t, "a", 3, 2)
	_, err = NewPlaceboTest([]ports.ModelPort{model}, []*dataset.Dataset{ds, other})
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
}

func TestExecuteLeaveOneOutCompleteness(t *testing.T) {
	datasets := []*dataset.Dataset{
		simulate(t, "five", 5, 1),
		simulate(t, "three", 3, 2),
	}
	models := []ports.ModelPort{
		testkit.DiffInMeansModel{},
		testkit.ConstantEffectModel{ModelName: "constant", Percent: 1},
	}
	progress := testkit.NewCountingProgress()

	test, err := NewPlaceboTest(models, datasets, WithProgress(progress))
	require.NoError(t, err)
	result, err := test.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, result.Len())
	wantUnits := map[string]int{"five": 5, "three": 3}
	for _, key := range result.Keys() {
		assert.Len(t, result.Effects(key), wantUnits[key.Dataset])
	}

	// pair order follows dataset-major iteration
	assert.Equal(t, PairKey{Model: "diff-in-means", Dataset: "five"}, result.Keys()[0])
	assert.Equal(t, PairKey{Model: "constant", Dataset: "three"}, result.Keys()[3])

	assert.Equal(t, 2, progress.Count("datasets"))
	assert.Equal(t, 4, progress.Count("models"))
	assert.Equal(t, 16, progress.Count("control units"))
	assert.Equal(t, 16, progress.Total("control units"))
}

func TestExecuteFlatPanelYieldsZeroEffects(t *testing.T) {
	cfg := testkit.DefaultSimulationConfig()
	cfg.NControl = 3
	ds, err := testkit.SimulateFlat("flat", cfg, 20)
	require.NoError(t, err)

	test, err := NewPlaceboTest([]ports.ModelPort{testkit.DiffInMeansModel{}}, []*dataset.Dataset{ds})
	require.NoError(t, err)
	result, err := test.Execute(context.Background())
	require.NoError(t, err)

	effects := result.Effects(PairKey{Model: "diff-in-means", Dataset: "flat"})
	require.Len(t, effects, 3)
	for _, e := range effects {
		assert.Zero(t, e.Effect.Percentage().Value)
	}
}

func TestExecutePropagatesModelFailure(t *testing.T) {
	ds := simulate(t, "panel", 4, 3)
	failing := &testkit.FailingModel{FailAfter: 2}

	test, err := NewPlaceboTest([]ports.ModelPort{failing}, []*dataset.Dataset{ds})
	require.NoError(t, err)

	_, err = test.Execute(context.Background())
	assert.ErrorIs(t, err, core.ErrModelEvaluation)
	assert.ErrorIs(t, err, testkit.ErrModelBroken)
}

func TestExecuteParallelMatchesSequential(t *testing.T) {
	datasets := []*dataset.Dataset{
		simulate(t, "a", 8, 1),
		simulate(t, "b", 5, 2),
	}
	models := []ports.ModelPort{testkit.DiffInMeansModel{}}

	test, err := NewPlaceboTest(models, datasets)
	require.NoError(t, err)

	sequential, err := test.Execute(context.Background())
	require.NoError(t, err)
	parallel, err := test.ExecuteParallel(context.Background(), 4)
	require.NoError(t, err)

	require.Equal(t, sequential.Keys(), parallel.Keys())
	for _, key := range sequential.Keys() {
		assert.Equal(t, sequential.Effects(key), parallel.Effects(key))
	}
}

func TestExecuteParallelRejectsBadWorkerCount(t *testing.T) {
	ds := simulate(t, "panel", 3, 1)
	test, err := NewPlaceboTest([]ports.ModelPort{testkit.DiffInMeansModel{}}, []*dataset.Dataset{ds})
	require.NoError(t, err)

	_, err = test.ExecuteParallel(context.Background(), 0)
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
}
