package csv

import (
	"errors"

	"github.com/shapestone/shape-csvtable/internal/parser"
)

// ParseError is a fatal parse failure with the position of the offending cell.
type ParseError = parser.ParseError

var (
	// ErrInvalidUTF8 indicates a cell whose bytes are not valid UTF-8.
	ErrInvalidUTF8 = parser.ErrInvalidUTF8

	// ErrRowOutOfRange indicates a row index outside the table.
	ErrRowOutOfRange = errors.New("row index out of range")

	// ErrColumnOutOfRange indicates a column index outside a row.
	ErrColumnOutOfRange = errors.New("column index out of range")

	// ErrUnknownColumn indicates a column name missing from the header.
	ErrUnknownColumn = errors.New("unknown column")
)
