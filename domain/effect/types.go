package effect

import "math"

// Percentage wraps a relative effect estimate in percentage points.
type Percentage struct {
	Value float64
}

// Effect is a model's estimated intervention effect: the observed
// post-period treated outcome against the model's counterfactual
// (untreated) prediction for the same period.
type Effect struct {
	Observed       float64
	Counterfactual float64
}

// Absolute returns the absolute effect estimate.
func (e Effect) Absolute() float64 {
	return e.Observed - e.Counterfactual
}

// Percentage returns the effect relative to the counterfactual, in
// percentage points. A zero counterfactual with a zero absolute effect is
// reported as zero; a zero counterfactual with a nonzero effect is
// undefined and reported as NaN.
func (e Effect) Percentage() Percentage {
	diff := e.Absolute()
	if e.Counterfactual == 0 {
		if diff == 0 {
			return Percentage{Value: 0}
		}
		return Percentage{Value: math.NaN()}
	}
	return Percentage{Value: 100 * diff / e.Counterfactual}
}

// Result carries one model evaluation outcome, keyed by the model name.
type Result struct {
	Model  string
	Effect Effect
}
