// Package csv reads and writes RFC 4180 CSV as in-memory tables.
//
// Input is tokenized by a lenient byte-level state machine and assembled
// into a Table: ordered, possibly ragged rows of trimmed text cells. A
// HeaderedTable treats the first row as column names and balances every row
// to a common width.
//
// # Parsing rules
//
//   - Cells are separated by commas; rows end with "\r\n" or a bare "\n".
//   - A cell may be quoted with '"'; inside quotes, commas, line breaks and
//     doubled quotes ("") are literal.
//   - A lone '\r' not followed by '\n' is cell content, not a line break.
//   - Every cell is decoded as UTF-8 and trimmed of surrounding whitespace.
//   - A missing final newline still yields the last row; a trailing newline
//     does not add an empty row.
//   - A last row that ends on a comma with no final cell ("a,b\nc,") was
//     never closed and is dropped.
//   - Malformed quoting never fails: an unterminated quoted field runs to the
//     end of input.
//
// The only fatal parse error is invalid UTF-8, reported as a *ParseError
// wrapping ErrInvalidUTF8. No partial table is returned.
//
// # Writing
//
// Rows are written with "," between cells and "\r\n" after every row. A cell
// containing '"', ',', '\r' or '\n' is quoted and its quotes are doubled.
//
// # Example
//
//	t, err := csv.ParseString("name,age\r\nAlice,30\r\n")
//	if err != nil {
//	    // handle error
//	}
//	h := csv.NewHeaderedTable(t)
//	age, _ := h.Cell(0, "age") // "30"
//
// # Thread Safety
//
// Tables are plain values with no shared backing storage; every constructor
// and accessor copies. A single table must not be mutated with AppendRow
// while other goroutines read it.
package csv

import (
	"fmt"
	"io"

	"github.com/shapestone/shape-csvtable/internal/parser"
)

// Parse parses CSV bytes into an unheadered Table.
func Parse(data []byte) (*Table, error) {
	rows, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}
	return &Table{rows: rows}, nil
}

// ParseString parses a CSV string into an unheadered Table.
func ParseString(input string) (*Table, error) {
	return Parse([]byte(input))
}

// ParseReader reads r to the end and parses the result.
// The whole input is held in memory; there is no incremental parsing.
func ParseReader(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("csv: read: %w", err)
	}
	return Parse(data)
}

// Format returns the format identifier for this parser.
func Format() string {
	return "CSV"
}

// Validate reports whether data parses. Since quoting errors are absorbed,
// the only failure is invalid UTF-8.
func Validate(data []byte) error {
	_, err := parser.Parse(data)
	return err
}
