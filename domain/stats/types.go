package stats

import (
	"fmt"
	"math"
)

// Output schema column names
const (
	ColModel   = "Model"
	ColDataset = "Dataset"
	ColEffect  = "Effect"
	ColStdDev  = "Standard Deviation"
	ColStdErr  = "Standard Error"
	ColPValue  = "p-value"
)

// PlaceboSummary is one aggregated placebo-test record for a
// (model, dataset) pair.
type PlaceboSummary struct {
	Model   string  `db:"model"`
	Dataset string  `db:"dataset"`
	Effect  float64 `db:"effect"`
	StdDev  float64 `db:"std_dev"`
	StdErr  float64 `db:"std_err"`
	PValue  float64 `db:"p_value"`
	NUnits  int     `db:"n_units"`
}

// Table is the assembled placebo-test result frame, one row per
// (model, dataset) pair.
type Table struct {
	Rows []PlaceboSummary
}

// Headers returns the output column names in schema order.
func Headers() []string {
	return []string{ColModel, ColDataset, ColEffect, ColStdDev, ColStdErr, ColPValue}
}

// Values returns one row's numeric and identifier cells in schema order.
func (s PlaceboSummary) Values() []interface{} {
	return []interface{}{s.Model, s.Dataset, s.Effect, s.StdDev, s.StdErr, s.PValue}
}

// Validate checks the output schema. The default mode requires finite,
// non-negative dispersion columns and a finite mean effect. Strict mode
// additionally requires strictly positive dispersion and a p-value in
// [0, 1], which rejects degenerate single-unit rows.
func (t Table) Validate(strict bool) error {
	for i, row := range t.Rows {
		if row.Model == "" {
			return fmt.Errorf("row %d: empty model identifier", i)
		}
		if row.Dataset == "" {
			return fmt.Errorf("row %d: empty dataset identifier", i)
		}
		if math.IsNaN(row.Effect) || math.IsInf(row.Effect, 0) {
			return fmt.Errorf("row %d (%s, %s): non-finite effect %v", i, row.Model, row.Dataset, row.Effect)
		}
		if err := checkDispersion(ColStdDev, row.StdDev, strict); err != nil {
			return fmt.Errorf("row %d (%s, %s): %w", i, row.Model, row.Dataset, err)
		}
		if err := checkDispersion(ColStdErr, row.StdErr, strict); err != nil {
			return fmt.Errorf("row %d (%s, %s): %w", i, row.Model, row.Dataset, err)
		}
		if strict && (math.IsNaN(row.PValue) || row.PValue < 0 || row.PValue > 1) {
			return fmt.Errorf("row %d (%s, %s): p-value %v outside [0, 1]", i, row.Model, row.Dataset, row.PValue)
		}
	}
	return nil
}

func checkDispersion(col string, v float64, strict bool) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("non-finite %s %v", col, v)
	}
	if v < 0 {
		return fmt.Errorf("negative %s %v", col, v)
	}
	if strict && v == 0 {
		return fmt.Errorf("%s must be strictly positive, got 0", col)
	}
	return nil
}
