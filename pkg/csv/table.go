package csv

import (
	"fmt"
	"io"
)

// Table is an unheadered CSV table: an ordered sequence of rows of text
// cells. Rows may have different lengths.
type Table struct {
	rows [][]string
}

// NewTable creates a Table from a copy of rows.
func NewTable(rows [][]string) *Table {
	return &Table{rows: copyRows(rows)}
}

// AppendRow appends a copy of row to the table.
func (t *Table) AppendRow(row []string) {
	t.rows = append(t.rows, copyRow(row))
}

// Len returns the number of rows in the table.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns a copy of the row at index i.
// Returns ErrRowOutOfRange if i is not a valid row index.
func (t *Table) Row(i int) ([]string, error) {
	if i < 0 || i >= len(t.rows) {
		return nil, fmt.Errorf("row %d of %d: %w", i, len(t.rows), ErrRowOutOfRange)
	}
	return copyRow(t.rows[i]), nil
}

// Rows returns a copy of all rows.
func (t *Table) Rows() [][]string {
	return copyRows(t.rows)
}

// Column returns the cell at index col from every row, in row order.
// The result always has Len() entries; a row too short to have the column
// reports ErrColumnOutOfRange in its entry.
func (t *Table) Column(col int) []CellResult {
	out := make([]CellResult, len(t.rows))
	for i, row := range t.rows {
		out[i] = cellAt(row, col)
	}
	return out
}

// Cell returns the cell at (row, col).
// Returns ErrRowOutOfRange or ErrColumnOutOfRange if either index is invalid.
func (t *Table) Cell(row, col int) (string, error) {
	if row < 0 || row >= len(t.rows) {
		return "", fmt.Errorf("row %d of %d: %w", row, len(t.rows), ErrRowOutOfRange)
	}
	r := cellAt(t.rows[row], col)
	return r.Value, r.Err
}

// String renders the table as CSV text.
func (t *Table) String() string {
	return string(t.Bytes())
}

// Bytes renders the table as CSV bytes.
func (t *Table) Bytes() []byte {
	return render(t.rows)
}

// WriteTo writes the table as CSV to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(t.Bytes())
	return int64(n), err
}

func cellAt(row []string, col int) CellResult {
	if col < 0 || col >= len(row) {
		return missing(fmt.Errorf("column %d of %d: %w", col, len(row), ErrColumnOutOfRange))
	}
	return found(row[col])
}

func copyRow(row []string) []string {
	out := make([]string, len(row))
	copy(out, row)
	return out
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = copyRow(row)
	}
	return out
}
