package transforms

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"causalval/domain/core"
)

// Sampler builds a sampling distribution bound to a random source. Any
// distuv distribution works; the source is injected at resolution time so
// seeded parameters can rebuild their stream per call.
type Sampler func(src rand.Source) distuv.Rander

// Normal returns a Gaussian sampler with the given mean and stddev.
func Normal(mu, sigma float64) Sampler {
	return func(src rand.Source) distuv.Rander {
		return distuv.Normal{Mu: mu, Sigma: sigma, Src: src}
	}
}

// Uniform returns a uniform sampler on [min, max).
func Uniform(min, max float64) Sampler {
	return func(src rand.Source) distuv.Rander {
		return distuv.Uniform{Min: min, Max: max, Src: src}
	}
}

// Parameter is a tagged variant over the two ways a transform parameter can
// vary: a fixed scalar applied to every unit, or a per-unit draw from a
// sampling distribution. A seeded varying parameter resolves identically on
// every call for a given unit count, regardless of call order.
type Parameter struct {
	fixed   bool
	value   float64
	sampler Sampler
	seed    uint64
	seeded  bool
}

// Fixed returns a scalar parameter.
func Fixed(value float64) Parameter {
	return Parameter{fixed: true, value: value}
}

// Varying returns a unit-varying parameter without a seed. Each resolution
// draws fresh values and is not reproducible.
func Varying(sampler Sampler) Parameter {
	return Parameter{sampler: sampler}
}

// SeededVarying returns a unit-varying parameter whose random stream is
// derived from seed alone.
func SeededVarying(sampler Sampler, seed uint64) Parameter {
	return Parameter{sampler: sampler, seed: seed, seeded: true}
}

// Second PCG word, golden-ratio increment. Keeps seed 0 well-defined.
const seedStream = 0x9e3779b97f4a7c15

// Resolve produces one value per unit. Fixed parameters ignore src. Seeded
// varying parameters rebuild their stream from the seed on every call;
// unseeded ones draw from src, or from a throwaway stream when src is nil.
func (p Parameter) Resolve(nUnits int, src rand.Source) ([]float64, error) {
	if nUnits <= 0 {
		return nil, core.ErrNonPositiveUnits
	}

	out := make([]float64, nUnits)
	if p.fixed {
		for i := range out {
			out[i] = p.value
		}
		return out, nil
	}

	if p.sampler == nil {
		return nil, core.NewInvalidConfigurationError("parameter", "varying parameter requires a sampling distribution")
	}

	s := src
	if p.seeded {
		s = rand.NewPCG(p.seed, seedStream)
	} else if s == nil {
		s = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	dist := p.sampler(s)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out, nil
}
