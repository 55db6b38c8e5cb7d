package reporting

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/isw2/evalplot/internal/metrics"
)

// Sheet names of the exported workbook.
const (
	MeansSheet = "Means"
	BestSheet  = "Best"
)

// WriteXLSX saves the summary as a workbook with a Means sheet (one row per
// pair, winning cells bold) and a Best sheet (one row per metric).
func WriteXLSX(path string, s *Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), MeansSheet); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}

	header := []string{metrics.ModelColumn, metrics.FeatureSelectionColumn, "n"}
	for _, m := range s.Metrics {
		header = append(header, m)
		if s.WithCI {
			header = append(header, m+" CI low", m+" CI high")
		}
	}
	for i, h := range header {
		if err := setCell(f, MeansSheet, i+1, 1, h, bold); err != nil {
			return err
		}
	}

	for r, row := range s.Rows {
		y := r + 2
		if err := setCell(f, MeansSheet, 1, y, row.Model, 0); err != nil {
			return err
		}
		if err := setCell(f, MeansSheet, 2, y, row.FeatureSelection, 0); err != nil {
			return err
		}
		if err := setCell(f, MeansSheet, 3, y, row.Runs, 0); err != nil {
			return err
		}
		x := 4
		for _, c := range row.Cells {
			style := 0
			if c.Best {
				style = bold
			}
			if err := setNumber(f, MeansSheet, x, y, c.Mean, style); err != nil {
				return err
			}
			x++
			if s.WithCI {
				lower, upper := math.NaN(), math.NaN()
				if c.CI != nil {
					lower, upper = c.CI.Lower, c.CI.Upper
				}
				if err := setNumber(f, MeansSheet, x, y, lower, 0); err != nil {
					return err
				}
				if err := setNumber(f, MeansSheet, x+1, y, upper, 0); err != nil {
					return err
				}
				x += 2
			}
		}
	}

	if _, err := f.NewSheet(BestSheet); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	for i, h := range []string{"Metric", "Best", "Mean", "Rating"} {
		if err := setCell(f, BestSheet, i+1, 1, h, bold); err != nil {
			return err
		}
	}
	y := 2
	for _, m := range s.Metrics {
		h, ok := s.Highlights[m]
		if !ok {
			continue
		}
		for i, v := range []any{m, h.Label, *roundMean(h.Mean), rating(m, h.Mean)} {
			if err := setCell(f, BestSheet, i+1, y, v, 0); err != nil {
				return err
			}
		}
		y++
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx: saving %s: %w", path, err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("xlsx: %s!%s: %w", sheet, cell, err)
	}
	if style != 0 {
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("xlsx: %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

// setNumber writes a rounded mean; absent values leave the cell empty.
func setNumber(f *excelize.File, sheet string, col, row int, v float64, style int) error {
	p := roundMean(v)
	if p == nil {
		return nil
	}
	return setCell(f, sheet, col, row, *p, style)
}
