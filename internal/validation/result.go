package validation

import (
	"causalval/domain/effect"
)

// PairKey identifies one (model, dataset) aggregation cell.
type PairKey struct {
	Model   string
	Dataset string
}

// PlaceboTestResult maps each (model, dataset) pair to its ordered
// per-control-unit effect estimates. Produced once by PlaceboTest.Execute
// and immutable thereafter; the per-unit order carries no semantic weight
// for aggregation.
type PlaceboTestResult struct {
	effects map[PairKey][]effect.Result
	order   []PairKey
}

func newPlaceboTestResult() *PlaceboTestResult {
	return &PlaceboTestResult{effects: make(map[PairKey][]effect.Result)}
}

func (r *PlaceboTestResult) add(key PairKey, results []effect.Result) {
	if _, ok := r.effects[key]; !ok {
		r.order = append(r.order, key)
	}
	r.effects[key] = results
}

// Keys returns the pair keys in insertion order.
func (r *PlaceboTestResult) Keys() []PairKey {
	out := make([]PairKey, len(r.order))
	copy(out, r.order)
	return out
}

// Effects returns the per-unit results for a pair, nil if the pair is
// unknown.
func (r *PlaceboTestResult) Effects(key PairKey) []effect.Result {
	results, ok := r.effects[key]
	if !ok {
		return nil
	}
	out := make([]effect.Result, len(results))
	copy(out, results)
	return out
}

// Len returns the number of (model, dataset) pairs.
func (r *PlaceboTestResult) Len() int {
	return len(r.order)
}
