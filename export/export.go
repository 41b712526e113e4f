// Package export writes executed chart data as spreadsheet-ready tables.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/promptchart/engine"
)

// SheetName is the worksheet that holds the table in XLSX exports.
const SheetName = "Chart"

// Format is an export format name.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "csv" or "xlsx" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// Write renders t to w in the given format.
func Write(w io.Writer, format Format, t engine.Table) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatXLSX:
		return WriteXLSX(w, t)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// ============================================================================
// CSV
// ============================================================================

// WriteCSV writes the header, one line per row and the summary line.
// Numbers are written in plain decimal form so spreadsheets parse them.
func WriteCSV(w io.Writer, t engine.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(t.Records()); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}

// ============================================================================
// XLSX
// ============================================================================

// WriteXLSX writes t as a single-sheet workbook. Values stay numeric cells;
// the header and summary rows are bold.
func WriteXLSX(w io.Writer, t engine.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	header := make([]any, 0, len(t.Columns))
	for _, h := range t.Header() {
		header = append(header, h)
	}
	if err := setRow(f, 1, header); err != nil {
		return err
	}
	if err := styleRow(f, 1, len(header), bold); err != nil {
		return err
	}

	rowNum := 2
	for _, row := range t.Rows {
		if err := setRow(f, rowNum, cells(row.Label, row.Values)); err != nil {
			return err
		}
		rowNum++
	}
	if t.Summary != nil {
		if err := setRow(f, rowNum, cells(t.Summary.Label, t.Summary.Values)); err != nil {
			return err
		}
		if err := styleRow(f, rowNum, len(header), bold); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 20); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func cells(label string, values []float64) []any {
	out := make([]any, 0, len(values)+1)
	out = append(out, label)
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func styleRow(f *excelize.File, row, width, style int) error {
	if width == 0 {
		return nil
	}
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(width, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(SheetName, first, last, style)
}
