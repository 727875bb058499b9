package analysis

import (
	"fmt"
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"causalval/domain/stats"
	"causalval/internal/validation"
)

// Summarize aggregates a placebo test result into one summary row per
// (model, dataset) pair: mean percentage effect, population standard
// deviation, standard error, and a two-sided one-sample t-test against a
// null effect of zero. Row order follows the result's pair order.
func Summarize(result *validation.PlaceboTestResult) (stats.Table, error) {
	rows := make([]stats.PlaceboSummary, 0, result.Len())
	for _, key := range result.Keys() {
		effects := result.Effects(key)
		values := make([]float64, len(effects))
		for i, e := range effects {
			values[i] = e.Effect.Percentage().Value
		}
		row, err := summarizePair(key, values)
		if err != nil {
			return stats.Table{}, err
		}
		rows = append(rows, row)
	}
	return stats.Table{Rows: rows}, nil
}

func summarizePair(key validation.PairKey, values []float64) (stats.PlaceboSummary, error) {
	n := len(values)
	if n == 0 {
		return stats.PlaceboSummary{}, fmt.Errorf("no effects recorded for model %s on dataset %s", key.Model, key.Dataset)
	}

	mean, err := mstats.Mean(values)
	if err != nil {
		return stats.PlaceboSummary{}, fmt.Errorf("aggregating %s/%s: %w", key.Model, key.Dataset, err)
	}
	stdDev, err := mstats.StandardDeviationPopulation(values)
	if err != nil {
		return stats.PlaceboSummary{}, fmt.Errorf("aggregating %s/%s: %w", key.Model, key.Dataset, err)
	}

	return stats.PlaceboSummary{
		Model:   key.Model,
		Dataset: key.Dataset,
		Effect:  mean,
		StdDev:  stdDev,
		StdErr:  stdDev / math.Sqrt(float64(n)),
		PValue:  oneSampleTTest(values, mean),
		NUnits:  n,
	}, nil
}

// oneSampleTTest computes the two-sided p-value of the null hypothesis
// "true mean is zero". The test statistic uses the sample (n-1) standard
// deviation. With a single observation the test is undefined and reports
// NaN. Zero spread degenerates to p = 1 when the common value is zero and
// p = 0 otherwise.
func oneSampleTTest(values []float64, mean float64) float64 {
	n := len(values)
	if n < 2 {
		return math.NaN()
	}

	sd, err := mstats.StandardDeviationSample(values)
	if err != nil {
		return math.NaN()
	}
	if sd == 0 {
		if mean == 0 {
			return 1
		}
		return 0
	}

	t := mean / (sd / math.Sqrt(float64(n)))
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	return 2 * (1 - tDist.CDF(math.Abs(t)))
}
