package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"causalval/domain/core"
)

// panel builds a dataset whose cell values encode (period, group, time,
// unit) so tests can assert exact relabeling.
func panel(t *testing.T, nPre, nPost, nControl, nTreated int) *Dataset {
	t.Helper()
	fill := func(base float64, rows, cols int) *mat.Dense {
		m := mat.NewDense(rows, cols, nil)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				m.Set(i, j, base+float64(i)*100+float64(j))
			}
		}
		return m
	}
	ds, err := New("panel",
		fill(1000, nPre, nControl),
		fill(2000, nPre, nTreated),
		fill(3000, nPost, nControl),
		fill(4000, nPost, nTreated),
	)
	require.NoError(t, err)
	return ds
}

func TestNewValidatesShapes(t *testing.T) {
	ok := func(r, c int) *mat.Dense { return mat.NewDense(r, c, nil) }

	cases := []struct {
		name                     string
		preC, preT, postC, postT *mat.Dense
	}{
		{"pre time mismatch", ok(5, 3), ok(4, 1), ok(2, 3), ok(2, 1)},
		{"post time mismatch", ok(5, 3), ok(5, 1), ok(2, 3), ok(3, 1)},
		{"control unit mismatch", ok(5, 3), ok(5, 1), ok(2, 4), ok(2, 1)},
		{"treated unit mismatch", ok(5, 3), ok(5, 1), ok(2, 3), ok(2, 2)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New("bad", tc.preC, tc.preT, tc.postC, tc.postT)
			assert.ErrorIs(t, err, core.ErrShapeMismatch)
		})
	}
}

func TestFromFullSpanSplitsAtT0(t *testing.T) {
	control := mat.NewDense(6, 2, []float64{
		0, 1,
		10, 11,
		20, 21,
		30, 31,
		40, 41,
		50, 51,
	})
	treated := mat.NewDense(6, 1, []float64{100, 110, 120, 130, 140, 150})

	ds, err := FromFullSpan("split", 4, control, treated)
	require.NoError(t, err)

	assert.Equal(t, 4, ds.T0())
	assert.Equal(t, 4, ds.PreLength())
	assert.Equal(t, 2, ds.PostLength())
	assert.Equal(t, 2, ds.NUnits())
	assert.Equal(t, 1, ds.NTreated())
	assert.Equal(t, 40.0, ds.PostControl().At(0, 0))
	assert.Equal(t, 140.0, ds.PostTreated().At(0, 0))

	// round trip through the stacked accessors
	assert.True(t, mat.Equal(control, ds.ControlUnits()))
	assert.True(t, mat.Equal(treated, ds.TreatedUnits()))
}

func TestFromFullSpanRequiresSamplesOnBothSides(t *testing.T) {
	control := mat.NewDense(4, 2, nil)
	treated := mat.NewDense(4, 1, nil)

	for _, t0 := range []int{0, 4} {
		_, err := FromFullSpan("bad", t0, control, treated)
		assert.ErrorIs(t, err, core.ErrShapeMismatch)
	}
}

func TestNewCopiesInputMatrices(t *testing.T) {
	pre := mat.NewDense(3, 2, nil)
	ds, err := New("copy", pre, mat.NewDense(3, 1, nil), mat.NewDense(2, 2, nil), mat.NewDense(2, 1, nil))
	require.NoError(t, err)

	pre.Set(0, 0, 99)
	assert.Equal(t, 0.0, ds.PreControl().At(0, 0))
}

func TestToPlaceboViewRelabelsOneControlUnit(t *testing.T) {
	ds := panel(t, 5, 3, 4, 2)

	view, err := ds.ToPlaceboView(2)
	require.NoError(t, err)

	assert.Equal(t, 3, view.NUnits())
	assert.Equal(t, 1, view.NTreated())
	assert.Equal(t, ds.T0(), view.T0())

	// treated series is control column 2, pre and post
	for i := 0; i < 5; i++ {
		assert.Equal(t, ds.PreControl().At(i, 2), view.PreTreated().At(i, 0))
	}
	for i := 0; i < 3; i++ {
		assert.Equal(t, ds.PostControl().At(i, 2), view.PostTreated().At(i, 0))
	}

	// remaining controls skip column 2 but keep order
	wantCols := []int{0, 1, 3}
	for i := 0; i < 5; i++ {
		for j, src := range wantCols {
			assert.Equal(t, ds.PreControl().At(i, src), view.PreControl().At(i, j))
		}
	}
}

func TestToPlaceboViewDoesNotMutateSource(t *testing.T) {
	ds := panel(t, 5, 3, 4, 2)
	before := mat.DenseCopyOf(ds.ControlUnits())
	beforeTreated := mat.DenseCopyOf(ds.TreatedUnits())

	view, err := ds.ToPlaceboView(0)
	require.NoError(t, err)
	view.PreControl().Set(0, 0, -1e9)
	view.PreTreated().Set(0, 0, -1e9)

	assert.True(t, mat.Equal(before, ds.ControlUnits()))
	assert.True(t, mat.Equal(beforeTreated, ds.TreatedUnits()))
	assert.Equal(t, 4, ds.NUnits())
}

func TestToPlaceboViewBounds(t *testing.T) {
	ds := panel(t, 5, 3, 4, 2)

	for _, i := range []int{-1, 4, 10} {
		_, err := ds.ToPlaceboView(i)
		assert.ErrorIs(t, err, core.ErrIndexOutOfRange)
	}
}

func TestToPlaceboViewNeedsTwoControls(t *testing.T) {
	ds := panel(t, 5, 3, 1, 1)

	_, err := ds.ToPlaceboView(0)
	assert.ErrorIs(t, err, core.ErrShapeMismatch)
}
