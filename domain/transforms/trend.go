package transforms

import (
	"math"

	"causalval/domain/core"
	"causalval/domain/dataset"
)

// Trend adds a polynomial deformation to every unit's full time series:
//
//	value[t] += intercept + coefficient * t^degree
//
// with t counted from 0 over the full span. A strictly positive coefficient
// strictly raises the final time step; a strictly negative one strictly
// lowers it.
type Trend struct {
	degree      int
	Coefficient Parameter
	Intercept   Parameter
}

// NewTrend builds a polynomial trend transform. The degree must be a
// positive integer.
func NewTrend(degree int, coefficient, intercept Parameter) (Trend, error) {
	if degree < 1 {
		return Trend{}, core.ErrNonPositiveDegree
	}
	return Trend{degree: degree, Coefficient: coefficient, Intercept: intercept}, nil
}

// Degree returns the polynomial degree.
func (tr Trend) Degree() int { return tr.degree }

func (tr Trend) Apply(ds *dataset.Dataset) (*dataset.Dataset, error) {
	if tr.degree < 1 {
		return nil, core.ErrNonPositiveDegree
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	src := unseededSource()
	control, treated := fullSpanGroups(ds)

	for _, g := range []group{control, treated} {
		coefficient, err := tr.Coefficient.Resolve(g.nUnits, src)
		if err != nil {
			return nil, err
		}
		intercept, err := tr.Intercept.Resolve(g.nUnits, src)
		if err != nil {
			return nil, err
		}

		degree := float64(tr.degree)
		addToGroup(g, func(t, unit int) float64 {
			return intercept[unit] + coefficient[unit]*math.Pow(float64(t), degree)
		})
	}

	return dataset.FromFullSpan(ds.Name(), ds.T0(), control.units, treated.units)
}
