// Package tokenizer splits raw CSV bytes into cell tokens.
package tokenizer

import "fmt"

// Kind tags a token with its position in the row.
type Kind int

const (
	// MidRow is a cell terminated by a comma. More cells follow in the row.
	MidRow Kind = iota
	// EndOfRow is the last cell of a row, terminated by a line break or EOF.
	EndOfRow
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case MidRow:
		return "MidRow"
	case EndOfRow:
		return "EndOfRow"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is one cell's raw bytes. Quotes have already been removed and
// escaped quotes collapsed; the bytes are not yet decoded or trimmed.
type Token struct {
	Kind  Kind
	Value []byte

	// Offset is the 0-indexed byte offset where the cell started.
	Offset int
	// Line and Column are 1-indexed; Column counts bytes.
	Line   int
	Column int
}
