package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"causalval/domain/stats"
)

const reportSheet = "Sheet1"

// WriteSummaryReport writes a placebo summary table to an XLSX workbook,
// one header row plus one row per (model, dataset) pair.
func WriteSummaryReport(path string, table stats.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	// Header row
	for i, h := range stats.Headers() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(reportSheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header %s: %w", h, err)
		}
	}

	// Data rows
	for r, row := range table.Rows {
		for c, v := range row.Values() {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(reportSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", r, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report %s: %w", path, err)
	}
	return nil
}

// ReadSummaryReport loads a previously written report back into a table.
// Identifier cells come back as strings, numeric cells are parsed as
// floats; the row layout must match WriteSummaryReport's.
func ReadSummaryReport(path string) (stats.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return stats.Table{}, fmt.Errorf("failed to open report %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	if err != nil {
		return stats.Table{}, fmt.Errorf("failed to read report %s: %w", path, err)
	}
	if len(rows) == 0 {
		return stats.Table{}, fmt.Errorf("report %s has no header row", path)
	}

	table := stats.Table{}
	for i, row := range rows[1:] {
		if len(row) < 6 {
			return stats.Table{}, fmt.Errorf("report %s row %d has %d cells, want 6", path, i+2, len(row))
		}
		summary := stats.PlaceboSummary{Model: row[0], Dataset: row[1]}
		for j, dst := range []*float64{&summary.Effect, &summary.StdDev, &summary.StdErr, &summary.PValue} {
			if _, err := fmt.Sscanf(row[j+2], "%g", dst); err != nil {
				return stats.Table{}, fmt.Errorf("report %s row %d col %d: %w", path, i+2, j+3, err)
			}
		}
		table.Rows = append(table.Rows, summary)
	}
	return table, nil
}
