package report

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/okian/tourneystats/internal/domain/individual"
	"github.com/okian/tourneystats/internal/domain/placement"
)

const (
	summarySheet = "Summary"
	defaultSheet = "Sheet1"
)

var (
	summaryHeader = []any{"Member", "Identifier", "Event", "Average Percentile", "Standard Deviation", "Slope", "Count"}
	pointsHeader  = []any{"Event", "Seq", "Tournament", "Percentile", "Normalized"}
)

// ExportXLSX writes a workbook with a summary sheet and one sheet of raw
// points per member. NaN statistics are left as empty cells.
func ExportXLSX(path string, reports []individual.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, summarySheet); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	if err := setRow(f, summarySheet, 1, summaryHeader); err != nil {
		return err
	}

	line := 2
	for _, r := range reports {
		for _, e := range r.Events {
			row := []any{
				r.Member,
				r.Identifier,
				placement.DisplayName(e.Name),
				cellFloat(e.Mean),
				cellFloat(e.StdDev),
				cellFloat(e.Slope),
				e.Count,
			}
			if err := setRow(f, summarySheet, line, row); err != nil {
				return err
			}
			line++
		}

		sheet := fmt.Sprintf("Member %d", r.Member)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("%w: %w", ErrExport, err)
		}
		if err := setRow(f, sheet, 1, pointsHeader); err != nil {
			return err
		}
		pl := 2
		for _, e := range r.Events {
			for _, pt := range e.Points {
				row := []any{e.Name, pt.Seq, pt.Tournament, pt.Raw, pt.Normalized}
				if err := setRow(f, sheet, pl, row); err != nil {
					return err
				}
				pl++
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExport, path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, line int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%w: %s!%s: %w", ErrExport, sheet, cell, err)
	}
	return nil
}

func cellFloat(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
