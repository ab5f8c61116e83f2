// Package xlsxtable converts between CSV tables and XLSX workbooks.
//
// Every cell is written and read as a string, so a workbook round trip
// preserves cell text. Spreadsheets do not store empty trailing cells, so
// those are lost on the way back. Read applies the same whitespace trimming
// as CSV parsing.
package xlsxtable

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/shapestone/shape-csvtable/pkg/csv"
)

// DefaultSheet is the sheet name used when none is given to Write.
const DefaultSheet = "Sheet1"

// Write writes t into a new workbook with a single sheet named sheet.
func Write(w io.Writer, t *csv.Table, sheet string) error {
	f, err := newWorkbook(t, sheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}

// Save writes t into a new workbook file at path, replacing any existing file.
func Save(path string, t *csv.Table, sheet string) error {
	f, err := newWorkbook(t, sheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx: save %s: %w", path, err)
	}
	return nil
}

// Read reads the named sheet of the workbook in r. An empty sheet name
// selects the first sheet.
func Read(r io.Reader, sheet string) (*csv.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open: %w", err)
	}
	defer f.Close()

	return readSheet(f, sheet)
}

// Open reads the named sheet of the workbook file at path. An empty sheet
// name selects the first sheet.
func Open(path, sheet string) (*csv.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open %s: %w", path, err)
	}
	defer f.Close()

	return readSheet(f, sheet)
}

func newWorkbook(t *csv.Table, sheet string) (*excelize.File, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	if first := f.GetSheetName(0); first != sheet {
		if err := f.SetSheetName(first, sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("xlsx: sheet name %q: %w", sheet, err)
		}
	}

	for r, row := range t.Rows() {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("xlsx: row %d column %d: %w", r, c, err)
			}
			if err := f.SetCellStr(sheet, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("xlsx: set %s: %w", cell, err)
			}
		}
	}

	return f, nil
}

func readSheet(f *excelize.File, sheet string) (*csv.Table, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %q: %w", sheet, err)
	}

	for i, row := range rows {
		for j, cell := range row {
			rows[i][j] = strings.TrimSpace(cell)
		}
	}

	return csv.NewTable(rows), nil
}
