package transforms

import (
	"math"

	"causalval/domain/dataset"
)

// Periodic adds a sinusoidal deformation to every unit's full time series:
//
//	value[t] += offset + amplitude * sin(2*pi*frequency*t/T + shift)
//
// where T is the full series length. Frequency is the number of full cycles
// over the series; integer frequencies in [1, T/2) place the dominant
// spectral peak exactly at that index.
type Periodic struct {
	Amplitude Parameter
	Frequency Parameter
	Shift     Parameter
	Offset    Parameter
}

// NewPeriodic builds a periodic transform from its four parameters.
func NewPeriodic(amplitude, frequency, shift, offset Parameter) Periodic {
	return Periodic{Amplitude: amplitude, Frequency: frequency, Shift: shift, Offset: offset}
}

// DefaultPeriodic is a single unit-amplitude cycle with no shift or offset.
func DefaultPeriodic() Periodic {
	return NewPeriodic(Fixed(1), Fixed(1), Fixed(0), Fixed(0))
}

func (p Periodic) Apply(ds *dataset.Dataset) (*dataset.Dataset, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	T := float64(ds.TotalLength())
	src := unseededSource()
	control, treated := fullSpanGroups(ds)

	for _, g := range []group{control, treated} {
		amplitude, err := p.Amplitude.Resolve(g.nUnits, src)
		if err != nil {
			return nil, err
		}
		frequency, err := p.Frequency.Resolve(g.nUnits, src)
		if err != nil {
			return nil, err
		}
		shift, err := p.Shift.Resolve(g.nUnits, src)
		if err != nil {
			return nil, err
		}
		offset, err := p.Offset.Resolve(g.nUnits, src)
		if err != nil {
			return nil, err
		}

		addToGroup(g, func(t, unit int) float64 {
			phase := 2*math.Pi*frequency[unit]*float64(t)/T + shift[unit]
			return offset[unit] + amplitude[unit]*math.Sin(phase)
		})
	}

	return dataset.FromFullSpan(ds.Name(), ds.T0(), control.units, treated.units)
}
