package transforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"causalval/domain/core"
	"causalval/internal/testkit"
)

func TestNewTrendRejectsNonPositiveDegree(t *testing.T) {
	for _, degree := range []int{0, -2} {
		_, err := NewTrend(degree, Fixed(1), Fixed(0))
		assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
	}
}

func TestTrendMonotonicSign(t *testing.T) {
	base := simulatePanel(t, testkit.DefaultSimulationConfig())

	cases := []struct {
		name        string
		coefficient float64
		increases   bool
	}{
		{"positive coefficient raises final step", 0.3, true},
		{"negative coefficient lowers final step", -0.3, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			trend, err := NewTrend(1, Fixed(tc.coefficient), Fixed(0))
			require.NoError(t, err)
			transformed, err := trend.Apply(base)
			require.NoError(t, err)

			baseUnits := base.ControlUnits()
			units := transformed.ControlUnits()
			rows, cols := units.Dims()
			for j := 0; j < cols; j++ {
				if tc.increases {
					assert.Greater(t, units.At(rows-1, j), baseUnits.At(rows-1, j))
				} else {
					assert.Less(t, units.At(rows-1, j), baseUnits.At(rows-1, j))
				}
			}
		})
	}
}

func TestTrendInterceptOnlyShiftsUniformly(t *testing.T) {
	base := simulatePanel(t, testkit.DefaultSimulationConfig())

	trend, err := NewTrend(1, Fixed(0), Fixed(2.5))
	require.NoError(t, err)
	transformed, err := trend.Apply(base)
	require.NoError(t, err)

	baseUnits := base.TreatedUnits()
	units := transformed.TreatedUnits()
	rows, cols := units.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			assert.InDelta(t, baseUnits.At(i, j)+2.5, units.At(i, j), 1e-12)
		}
	}
}

func TestTrendHigherDegrees(t *testing.T) {
	base := flatPanel(t, testkit.DefaultSimulationConfig(), 0)

	for _, degree := range []int{2, 3} {
		trend, err := NewTrend(degree, Fixed(0.001), Fixed(0))
		require.NoError(t, err)
		transformed, err := trend.Apply(base)
		require.NoError(t, err)

		units := transformed.ControlUnits()
		rows, _ := units.Dims()
		// strictly increasing after t = 0 for a positive coefficient
		for i := 2; i < rows; i++ {
			assert.Greater(t, units.At(i, 0), units.At(i-1, 0))
		}
	}
}

func TestTrendUnitVaryingParameterDiffersAcrossUnits(t *testing.T) {
	cfg := testkit.DefaultSimulationConfig()
	cfg.NControl = 2
	base := flatPanel(t, cfg, 0)

	for _, trend := range []Trend{
		mustTrend(t, 1, SeededVarying(Normal(0, 5), 11), Fixed(0)),
		mustTrend(t, 1, Fixed(0), SeededVarying(Normal(0, 5), 12)),
	} {
		transformed, err := trend.Apply(base)
		require.NoError(t, err)

		units := transformed.ControlUnits()
		rows, _ := units.Dims()
		first := make([]float64, rows)
		second := make([]float64, rows)
		for i := 0; i < rows; i++ {
			first[i] = units.At(i, 0)
			second[i] = units.At(i, 1)
		}
		assert.NotEqual(t, first, second)
	}
}

func TestTrendSeededApplicationsAreReproducible(t *testing.T) {
	base := simulatePanel(t, testkit.DefaultSimulationConfig())

	trend := mustTrend(t, 1, SeededVarying(Normal(0.1, 0.05), 99), Fixed(0))
	a, err := trend.Apply(base)
	require.NoError(t, err)
	b, err := trend.Apply(base)
	require.NoError(t, err)

	assert.True(t, mat.Equal(a.ControlUnits(), b.ControlUnits()))
	assert.True(t, mat.Equal(a.TreatedUnits(), b.TreatedUnits()))

	other := mustTrend(t, 1, SeededVarying(Normal(0.1, 0.05), 100), Fixed(0))
	c, err := other.Apply(base)
	require.NoError(t, err)
	assert.False(t, mat.Equal(a.ControlUnits(), c.ControlUnits()))
}

func mustTrend(t *testing.T, degree int, coefficient, intercept Parameter) Trend {
	t.Helper()
	trend, err := NewTrend(degree, coefficient, intercept)
	require.NoError(t, err)
	return trend
}
