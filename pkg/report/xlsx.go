package report

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is the worksheet name when none is configured.
const DefaultSheetName = "Links"

// Column width bounds (in Excel character units) for auto-sizing.
const (
	minColWidth = 10
	maxColWidth = 80
)

// XLSXFormatter renders report rows as an Excel workbook. Excel detects the
// URL column values as hyperlinks on its own, so cells hold the raw URL text.
type XLSXFormatter struct {
	opts FormatOptions
}

// NewXLSXFormatter creates a new xlsx formatter with the given options.
func NewXLSXFormatter(opts FormatOptions) *XLSXFormatter {
	return &XLSXFormatter{opts: opts}
}

// Name returns the format name.
func (f *XLSXFormatter) Name() string {
	return "xlsx"
}

// Format writes a single-sheet workbook with a bold header row and columns
// sized to their longest cell.
func (f *XLSXFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	sheet := f.opts.SheetName
	if sheet == "" {
		sheet = DefaultSheetName
	}

	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	widths := make([]int, len(Columns))

	for col, name := range Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := wb.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		widths[col] = len(name)
	}

	for i, row := range report.Rows {
		for col, value := range row.cells() {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := wb.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("writing row %d: %w", i+1, err)
			}
			if len(value) > widths[col] {
				widths[col] = len(value)
			}
		}
	}

	if err := f.styleSheet(wb, sheet, widths); err != nil {
		return err
	}

	if err := wb.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

func (f *XLSXFormatter) styleSheet(wb *excelize.File, sheet string, widths []int) error {
	bold, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(Columns), 1)
	if err != nil {
		return err
	}
	if err := wb.SetCellStyle(sheet, "A1", lastHeader, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for col, width := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		w := float64(width) + 2
		if w < minColWidth {
			w = minColWidth
		}
		if w > maxColWidth {
			w = maxColWidth
		}
		if err := wb.SetColWidth(sheet, name, name, w); err != nil {
			return fmt.Errorf("sizing column %s: %w", name, err)
		}
	}

	return nil
}
