package transforms

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"causalval/domain/dataset"
)

// Transform maps one Dataset to another without mutating its input. A
// transform's only state is its parameters; it holds no dataset references
// between calls.
type Transform interface {
	Apply(ds *dataset.Dataset) (*dataset.Dataset, error)
}

// Chain applies transforms left to right. Applying a Chain is equivalent to
// applying its members in sequence.
type Chain []Transform

func (c Chain) Apply(ds *dataset.Dataset) (*dataset.Dataset, error) {
	out := ds
	for _, t := range c {
		next, err := t.Apply(out)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

// group pairs a full-span working matrix with its unit count so additive
// transforms can resolve parameters independently for control and treated
// units.
type group struct {
	units  *mat.Dense
	nUnits int
}

// fullSpanGroups copies both panels of ds into working matrices.
func fullSpanGroups(ds *dataset.Dataset) (control, treated group) {
	control = group{units: ds.ControlUnits(), nUnits: ds.NUnits()}
	treated = group{units: ds.TreatedUnits(), nUnits: ds.NTreated()}
	return control, treated
}

// addToGroup adds delta(t, unit) to every cell of the group's matrix.
func addToGroup(g group, delta func(t, unit int) float64) {
	rows, cols := g.units.Dims()
	for j := 0; j < cols; j++ {
		for t := 0; t < rows; t++ {
			g.units.Set(t, j, g.units.At(t, j)+delta(t, j))
		}
	}
}

// unseededSource builds a throwaway stream for parameters without an
// explicit seed.
func unseededSource() rand.Source {
	return rand.NewPCG(rand.Uint64(), rand.Uint64())
}
