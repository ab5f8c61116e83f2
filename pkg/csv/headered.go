package csv

import (
	"fmt"
	"strconv"
)

// HeaderedTable is a CSV table whose first row names the columns.
//
// Every data row has the same width. Column names map to indices; when the
// header repeats a name, the last occurrence wins and the earlier column is
// reachable only by position.
type HeaderedTable struct {
	columns map[string]int
	width   int
	rows    [][]string
}

// NewHeaderedTable builds a HeaderedTable from t, consuming its first row as
// the header. t is not modified.
//
// The width is the longest row in t, header included. A short header is
// padded with synthetic names equal to each missing column's index ("2" for
// the third column); short data rows are padded with empty cells. An empty
// t gives an empty header and no rows.
func NewHeaderedTable(t *Table) *HeaderedTable {
	var header []string
	if len(t.rows) > 0 {
		header = copyRow(t.rows[0])
	}

	width := len(header)
	for _, row := range t.rows {
		if len(row) > width {
			width = len(row)
		}
	}

	for len(header) < width {
		header = append(header, strconv.Itoa(len(header)))
	}

	columns := make(map[string]int, width)
	for i, name := range header {
		columns[name] = i
	}

	var data [][]string
	if len(t.rows) > 1 {
		data = make([][]string, 0, len(t.rows)-1)
		for _, row := range t.rows[1:] {
			padded := make([]string, width)
			copy(padded, row)
			data = append(data, padded)
		}
	}

	return &HeaderedTable{
		columns: columns,
		width:   width,
		rows:    data,
	}
}

// ParseHeaded parses CSV bytes into a HeaderedTable.
func ParseHeaded(data []byte) (*HeaderedTable, error) {
	t, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return NewHeaderedTable(t), nil
}

// ParseHeadedString parses a CSV string into a HeaderedTable.
func ParseHeadedString(input string) (*HeaderedTable, error) {
	return ParseHeaded([]byte(input))
}

// Len returns the number of data rows, not counting the header.
func (h *HeaderedTable) Len() int {
	return len(h.rows)
}

// ColumnCount returns the number of distinct column names. It is less than
// Width when the header repeats a name.
func (h *HeaderedTable) ColumnCount() int {
	return len(h.columns)
}

// Width returns the number of cells in every row.
func (h *HeaderedTable) Width() int {
	return h.width
}

// ColumnIndex resolves a column name to its index.
func (h *HeaderedTable) ColumnIndex(name string) (int, bool) {
	i, ok := h.columns[name]
	return i, ok
}

// Header returns the column names in index order. A position whose name was
// overwritten by a later duplicate is named by its index.
func (h *HeaderedTable) Header() []string {
	header := make([]string, h.width)
	named := make([]bool, h.width)
	for name, i := range h.columns {
		header[i] = name
		named[i] = true
	}
	for i := range header {
		if !named[i] {
			header[i] = strconv.Itoa(i)
		}
	}
	return header
}

// Row returns a copy of data row i. Index 0 is the first row after the header.
// Returns ErrRowOutOfRange if i is not a valid row index.
func (h *HeaderedTable) Row(i int) ([]string, error) {
	if i < 0 || i >= len(h.rows) {
		return nil, fmt.Errorf("row %d of %d: %w", i, len(h.rows), ErrRowOutOfRange)
	}
	return copyRow(h.rows[i]), nil
}

// Record returns data row i keyed by column name.
// Returns ErrRowOutOfRange if i is not a valid row index.
func (h *HeaderedTable) Record(i int) (map[string]string, error) {
	row, err := h.Row(i)
	if err != nil {
		return nil, err
	}
	record := make(map[string]string, len(h.columns))
	for name, idx := range h.columns {
		record[name] = row[idx]
	}
	return record, nil
}

// Column returns the named column's cell from every data row.
//
// The result always has Len() entries. If name is not a column, every entry
// reports ErrUnknownColumn, so callers can still walk the rows.
func (h *HeaderedTable) Column(name string) []CellResult {
	out := make([]CellResult, len(h.rows))
	idx, ok := h.columns[name]
	if !ok {
		err := fmt.Errorf("column %q: %w", name, ErrUnknownColumn)
		for i := range out {
			out[i] = missing(err)
		}
		return out
	}
	for i, row := range h.rows {
		out[i] = cellAt(row, idx)
	}
	return out
}

// Cell returns the cell in data row row under column name.
// Returns ErrUnknownColumn or ErrRowOutOfRange on a failed lookup.
func (h *HeaderedTable) Cell(row int, name string) (string, error) {
	idx, ok := h.columns[name]
	if !ok {
		return "", fmt.Errorf("column %q: %w", name, ErrUnknownColumn)
	}
	if row < 0 || row >= len(h.rows) {
		return "", fmt.Errorf("row %d of %d: %w", row, len(h.rows), ErrRowOutOfRange)
	}
	r := cellAt(h.rows[row], idx)
	return r.Value, r.Err
}

// Unheadered converts back to a Table whose first row is the header.
//
// This is not an exact inverse of NewHeaderedTable: rows stay padded, and
// a duplicate header name comes back as its index. A table built from an
// empty source converts to an empty Table.
func (h *HeaderedTable) Unheadered() *Table {
	if h.width == 0 && len(h.rows) == 0 {
		return &Table{}
	}
	rows := make([][]string, 0, len(h.rows)+1)
	rows = append(rows, h.Header())
	for _, row := range h.rows {
		rows = append(rows, copyRow(row))
	}
	return &Table{rows: rows}
}

// String renders the header and data rows as CSV text.
func (h *HeaderedTable) String() string {
	return h.Unheadered().String()
}

// Bytes renders the header and data rows as CSV bytes.
func (h *HeaderedTable) Bytes() []byte {
	return h.Unheadered().Bytes()
}
