package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"causalval/domain/core"
)

// ToPlaceboView relabels control unit i as the sole treated unit and
// removes it from the control set, producing a fresh Dataset for one
// leave-one-out placebo trial. The intervention index is inherited and the
// source Dataset is left untouched.
func (d *Dataset) ToPlaceboView(i int) (*Dataset, error) {
	n := d.NUnits()
	if i < 0 || i >= n {
		return nil, core.NewIndexOutOfRangeError(i, n)
	}
	if n < 2 {
		return nil, core.NewShapeMismatchError("control units", "placebo view needs at least two control units")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	view := &Dataset{
		name:        fmt.Sprintf("%s/placebo-%d", d.name, i),
		preControl:  dropColumn(d.preControl, i),
		preTreated:  takeColumn(d.preControl, i),
		postControl: dropColumn(d.postControl, i),
		postTreated: takeColumn(d.postControl, i),
	}
	return view, nil
}

// takeColumn copies column j into a single-column matrix.
func takeColumn(m *mat.Dense, j int) *mat.Dense {
	r, _ := m.Dims()
	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		out.Set(i, 0, m.At(i, j))
	}
	return out
}

// dropColumn copies every column except j.
func dropColumn(m *mat.Dense, j int) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(r, c-1, nil)
	for i := 0; i < r; i++ {
		col := 0
		for k := 0; k < c; k++ {
			if k == j {
				continue
			}
			out.Set(i, col, m.At(i, k))
			col++
		}
	}
	return out
}
