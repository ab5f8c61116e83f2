// Package parser assembles tokenizer output into rows of decoded cells.
package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-csvtable/internal/tokenizer"
)

// ErrInvalidUTF8 is returned when a cell's bytes are not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 in cell")

// ParseError represents a fatal parsing error with position information.
type ParseError struct {
	// Offset is the 0-indexed byte offset of the offending cell.
	Offset int
	// Line is the line where the cell started (1-indexed).
	Line int
	// Column is the byte column where the cell started (1-indexed).
	Column int
	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error on line %d, column %d (offset %d): %v", e.Line, e.Column, e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse tokenizes data and groups the tokens into rows.
//
// MidRow tokens accumulate into the current row; an EndOfRow token closes it.
// Every cell is decoded as UTF-8 and trimmed of surrounding whitespace.
// Rows may have differing lengths.
//
// Only an EndOfRow token closes a row. If input ends while a row holds
// nothing but MidRow cells (input "a," or "x,y\nz,"), that row is dropped.
//
// Invalid UTF-8 in any cell aborts the parse with a *ParseError; no rows
// are returned.
func Parse(data []byte) ([][]string, error) {
	var rows [][]string
	err := assemble(data, func(row []string, _ []tokenizer.Token) {
		rows = append(rows, row)
	})
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = [][]string{}
	}
	return rows, nil
}

// ParseAST parses data like Parse and returns the rows as an AST: an
// ArrayDataNode of records, each an ArrayDataNode of LiteralNode cells.
// Nodes carry the position where their cell started.
func ParseAST(data []byte) (*ast.ArrayDataNode, error) {
	records := make([]ast.SchemaNode, 0, 16)
	err := assemble(data, func(row []string, tokens []tokenizer.Token) {
		fields := make([]ast.SchemaNode, len(row))
		for i, cell := range row {
			fields[i] = ast.NewLiteralNode(cell, position(tokens[i]))
		}
		records = append(records, ast.NewArrayDataNode(fields, position(tokens[0])))
	})
	if err != nil {
		return nil, err
	}
	return ast.NewArrayDataNode(records, ast.ZeroPosition()), nil
}

// assemble drives the tokenizer and hands each completed row, together with
// the tokens it was built from, to emit.
func assemble(data []byte, emit func(row []string, tokens []tokenizer.Token)) error {
	tz := tokenizer.New(data)

	var (
		row       []string
		rowTokens []tokenizer.Token
	)

	for {
		tok, ok := tz.Next()
		if !ok {
			break
		}

		cell, err := decode(tok)
		if err != nil {
			return err
		}
		row = append(row, cell)
		rowTokens = append(rowTokens, tok)

		if tok.Kind == tokenizer.EndOfRow {
			emit(row, rowTokens)
			row = nil
			rowTokens = nil
		}
	}

	// A row still pending here ended on a comma. Only EndOfRow closes a row.
	return nil
}

// decode converts a token's raw bytes into a trimmed cell.
func decode(tok tokenizer.Token) (string, error) {
	if !utf8.Valid(tok.Value) {
		return "", &ParseError{
			Offset: tok.Offset,
			Line:   tok.Line,
			Column: tok.Column,
			Err:    ErrInvalidUTF8,
		}
	}
	return strings.TrimSpace(string(tok.Value)), nil
}

func position(tok tokenizer.Token) ast.Position {
	return ast.NewPosition(tok.Offset, tok.Line, tok.Column)
}
