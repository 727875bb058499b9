package testkit

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"causalval/domain/dataset"
)

// SimulationConfig configures the synthetic panel generator.
type SimulationConfig struct {
	NControl    int
	NTreated    int
	NPre        int
	NPost       int
	GlobalMean  float64
	GlobalScale float64
	Seed        uint64
}

// DefaultSimulationConfig returns sensible defaults for panel generation
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		NControl:    10,
		NTreated:    1,
		NPre:        60,
		NPost:       30,
		GlobalMean:  20.0,
		GlobalScale: 0.2,
		Seed:        42,
	}
}

// Simulate generates a seeded panel where every unit is Gaussian noise
// around the global mean. The same config always yields the same panel.
func Simulate(name string, cfg SimulationConfig) (*dataset.Dataset, error) {
	src := rand.NewPCG(cfg.Seed, 0)
	dist := distuv.Normal{Mu: cfg.GlobalMean, Sigma: cfg.GlobalScale, Src: src}

	fill := func(rows, cols int) *mat.Dense {
		m := mat.NewDense(rows, cols, nil)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				m.Set(i, j, dist.Rand())
			}
		}
		return m
	}

	return dataset.New(name,
		fill(cfg.NPre, cfg.NControl),
		fill(cfg.NPre, cfg.NTreated),
		fill(cfg.NPost, cfg.NControl),
		fill(cfg.NPost, cfg.NTreated),
	)
}

// SimulateFlat generates a panel where every series is the constant value.
// Useful for exact zero-effect assertions.
func SimulateFlat(name string, cfg SimulationConfig, value float64) (*dataset.Dataset, error) {
	fill := func(rows, cols int) *mat.Dense {
		m := mat.NewDense(rows, cols, nil)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				m.Set(i, j, value)
			}
		}
		return m
	}

	return dataset.New(name,
		fill(cfg.NPre, cfg.NControl),
		fill(cfg.NPre, cfg.NTreated),
		fill(cfg.NPost, cfg.NControl),
		fill(cfg.NPost, cfg.NTreated),
	)
}
