package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"causalval/domain/core"
)

// Dataset is an immutable panel of unit time series split into control and
// treated groups around an intervention index. Rows are time steps, columns
// are units. Matrices returned by accessors are owned by the Dataset and
// must be treated as read-only; operations that derive new panels
// (transforms, placebo views) copy the underlying data.
type Dataset struct {
	name        string
	preControl  *mat.Dense // t0 x nControl
	preTreated  *mat.Dense // t0 x nTreated
	postControl *mat.Dense // (T - t0) x nControl
	postTreated *mat.Dense // (T - t0) x nTreated
}

// New constructs a Dataset from its four panel slots and validates the
// shape invariants: matching time lengths within each period, matching unit
// counts across periods, and at least one sample on each side of the
// intervention.
func New(name string, preControl, preTreated, postControl, postTreated *mat.Dense) (*Dataset, error) {
	ds := &Dataset{
		name:        name,
		preControl:  mat.DenseCopyOf(preControl),
		preTreated:  mat.DenseCopyOf(preTreated),
		postControl: mat.DenseCopyOf(postControl),
		postTreated: mat.DenseCopyOf(postTreated),
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// FromFullSpan constructs a Dataset by splitting full-span control and
// treated matrices at intervention index t0.
func FromFullSpan(name string, t0 int, control, treated *mat.Dense) (*Dataset, error) {
	rows, _ := control.Dims()
	tRows, _ := treated.Dims()
	if rows != tRows {
		return nil, core.NewShapeMismatchError("full span", fmt.Sprintf("control has %d rows, treated has %d", rows, tRows))
	}
	if t0 < 1 || t0 >= rows {
		return nil, core.ErrEmptyPeriod
	}
	pre := func(m *mat.Dense) *mat.Dense {
		_, c := m.Dims()
		return mat.DenseCopyOf(m.Slice(0, t0, 0, c))
	}
	post := func(m *mat.Dense) *mat.Dense {
		_, c := m.Dims()
		return mat.DenseCopyOf(m.Slice(t0, rows, 0, c))
	}
	return New(name, pre(control), pre(treated), post(control), post(treated))
}

// Validate checks the panel shape invariants. Transforms call this
// defensively before deriving a new panel.
func (d *Dataset) Validate() error {
	preCR, preCC := d.preControl.Dims()
	preTR, preTC := d.preTreated.Dims()
	postCR, postCC := d.postControl.Dims()
	postTR, postTC := d.postTreated.Dims()

	if preCR != preTR {
		return core.NewShapeMismatchError("pre period", fmt.Sprintf("control has %d rows, treated has %d", preCR, preTR))
	}
	if postCR != postTR {
		return core.NewShapeMismatchError("post period", fmt.Sprintf("control has %d rows, treated has %d", postCR, postTR))
	}
	if preCC != postCC {
		return core.NewShapeMismatchError("control units", fmt.Sprintf("pre has %d columns, post has %d", preCC, postCC))
	}
	if preTC != postTC {
		return core.NewShapeMismatchError("treated units", fmt.Sprintf("pre has %d columns, post has %d", preTC, postTC))
	}
	if preCR < 1 || postCR < 1 {
		return core.ErrEmptyPeriod
	}
	if preCC < 1 {
		return core.NewShapeMismatchError("control units", "at least one control unit required")
	}
	if preTC < 1 {
		return core.NewShapeMismatchError("treated units", "at least one treated unit required")
	}
	return nil
}

// Name returns the dataset identifier used as an aggregation key.
func (d *Dataset) Name() string { return d.name }

// T0 returns the intervention index: the number of pre-period samples.
func (d *Dataset) T0() int {
	r, _ := d.preControl.Dims()
	return r
}

// NUnits returns the control unit count.
func (d *Dataset) NUnits() int {
	_, c := d.preControl.Dims()
	return c
}

// NTreated returns the treated unit count.
func (d *Dataset) NTreated() int {
	_, c := d.preTreated.Dims()
	return c
}

// PreLength returns the number of pre-intervention samples.
func (d *Dataset) PreLength() int { return d.T0() }

// PostLength returns the number of post-intervention samples.
func (d *Dataset) PostLength() int {
	r, _ := d.postControl.Dims()
	return r
}

// TotalLength returns the full time-series length.
func (d *Dataset) TotalLength() int { return d.PreLength() + d.PostLength() }

// Panel slot accessors. Read-only.
func (d *Dataset) PreControl() *mat.Dense  { return d.preControl }
func (d *Dataset) PreTreated() *mat.Dense  { return d.preTreated }
func (d *Dataset) PostControl() *mat.Dense { return d.postControl }
func (d *Dataset) PostTreated() *mat.Dense { return d.postTreated }

// ControlUnits returns a freshly allocated full-span control matrix
// (pre period stacked above post period).
func (d *Dataset) ControlUnits() *mat.Dense {
	return stack(d.preControl, d.postControl)
}

// TreatedUnits returns a freshly allocated full-span treated matrix.
func (d *Dataset) TreatedUnits() *mat.Dense {
	return stack(d.preTreated, d.postTreated)
}

func stack(top, bottom *mat.Dense) *mat.Dense {
	tr, tc := top.Dims()
	br, _ := bottom.Dims()
	out := mat.NewDense(tr+br, tc, nil)
	for i := 0; i < tr; i++ {
		for j := 0; j < tc; j++ {
			out.Set(i, j, top.At(i, j))
		}
	}
	for i := 0; i < br; i++ {
		for j := 0; j < tc; j++ {
			out.Set(tr+i, j, bottom.At(i, j))
		}
	}
	return out
}
