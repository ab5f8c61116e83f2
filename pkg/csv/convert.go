package csv

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-csvtable/internal/parser"
)

// ParseAST parses CSV bytes into Shape's AST:
//   - *ast.ArrayDataNode for the file (array of records)
//   - each record is an *ast.ArrayDataNode of fields
//   - each field is an *ast.LiteralNode holding the trimmed cell string
//
// Nodes carry the line, column and offset where their cell started.
func ParseAST(data []byte) (*ast.ArrayDataNode, error) {
	return parser.ParseAST(data)
}

// ToAST converts the table to an AST ArrayDataNode.
// This is useful for integration with other Shape parsers.
func (t *Table) ToAST() *ast.ArrayDataNode {
	records := make([]ast.SchemaNode, len(t.rows))
	for i, row := range t.rows {
		fields := make([]ast.SchemaNode, len(row))
		for j, cell := range row {
			fields[j] = ast.NewLiteralNode(cell, ast.ZeroPosition())
		}
		records[i] = ast.NewArrayDataNode(fields, ast.ZeroPosition())
	}
	return ast.NewArrayDataNode(records, ast.ZeroPosition())
}

// ToAST converts the header and data rows to an AST ArrayDataNode.
func (h *HeaderedTable) ToAST() *ast.ArrayDataNode {
	return h.Unheadered().ToAST()
}

// TableFromAST creates a Table from an AST ArrayDataNode of records.
// Non-string literal values are formatted with %v.
func TableFromAST(node ast.SchemaNode) (*Table, error) {
	file, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("expected *ast.ArrayDataNode, got %T", node)
	}

	rows := make([][]string, 0, file.Len())
	for i, elem := range file.Elements() {
		record, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			return nil, fmt.Errorf("record %d: expected *ast.ArrayDataNode, got %T", i, elem)
		}

		fields := make([]string, 0, record.Len())
		for j, fieldNode := range record.Elements() {
			literal, ok := fieldNode.(*ast.LiteralNode)
			if !ok {
				return nil, fmt.Errorf("record %d field %d: expected *ast.LiteralNode, got %T", i, j, fieldNode)
			}
			fields = append(fields, literalString(literal))
		}
		rows = append(rows, fields)
	}

	return &Table{rows: rows}, nil
}

// HeaderedFromAST creates a HeaderedTable from an AST ArrayDataNode whose
// first record is the header.
func HeaderedFromAST(node ast.SchemaNode) (*HeaderedTable, error) {
	t, err := TableFromAST(node)
	if err != nil {
		return nil, err
	}
	return NewHeaderedTable(t), nil
}

func literalString(node *ast.LiteralNode) string {
	switch v := node.Value().(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
