// Package arrowtable converts headered CSV tables to and from Apache Arrow
// tables and Parquet files.
//
// CSV cells are untyped text, so every column maps to a non-nullable utf8
// Arrow column named after its header. Reading goes the other way for any
// column type: values are formatted with the array's ValueStr and nulls
// become empty cells.
package arrowtable

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/shapestone/shape-csvtable/pkg/csv"
)

// Schema returns the Arrow schema for h: one utf8 field per header position.
func Schema(h *csv.HeaderedTable) *arrow.Schema {
	header := h.Header()
	fields := make([]arrow.Field, len(header))
	for i, name := range header {
		fields[i] = arrow.Field{Name: name, Type: arrow.BinaryTypes.String}
	}
	return arrow.NewSchema(fields, nil)
}

// ToArrow builds an Arrow table holding h's data rows. The caller must
// Release the returned table.
func ToArrow(mem memory.Allocator, h *csv.HeaderedTable) arrow.Table {
	schema := Schema(h)

	builders := make([]*array.StringBuilder, h.Width())
	for i := range builders {
		builders[i] = array.NewStringBuilder(mem)
		builders[i].Reserve(h.Len())
	}

	for row := 0; row < h.Len(); row++ {
		cells, _ := h.Row(row)
		for i, cell := range cells {
			builders[i].Append(cell)
		}
	}

	columns := make([]arrow.Column, len(builders))
	for i, builder := range builders {
		arr := builder.NewArray()
		builder.Release()

		chunked := arrow.NewChunked(schema.Field(i).Type, []arrow.Array{arr})
		arr.Release()
		columns[i] = *arrow.NewColumn(schema.Field(i), chunked)
		chunked.Release()
	}

	tbl := array.NewTable(schema, columns, int64(h.Len()))
	for i := range columns {
		columns[i].Release()
	}
	return tbl
}

// FromArrow converts an Arrow table into a HeaderedTable. Field names become
// the header; cells are formatted with ValueStr.
func FromArrow(tbl arrow.Table) (*csv.HeaderedTable, error) {
	schema := tbl.Schema()
	header := make([]string, schema.NumFields())
	for i, field := range schema.Fields() {
		header[i] = field.Name
	}

	rows := make([][]string, 0, tbl.NumRows()+1)
	rows = append(rows, header)

	tr := array.NewTableReader(tbl, 1024)
	defer tr.Release()

	for tr.Next() {
		rec := tr.Record()
		for r := 0; r < int(rec.NumRows()); r++ {
			row := make([]string, rec.NumCols())
			for c, col := range rec.Columns() {
				row[c] = formatValue(col, r)
			}
			rows = append(rows, row)
		}
	}
	if err := tr.Err(); err != nil {
		return nil, fmt.Errorf("arrow: read table: %w", err)
	}

	return csv.NewHeaderedTable(csv.NewTable(rows)), nil
}

func formatValue(col arrow.Array, pos int) string {
	if col.IsNull(pos) {
		return ""
	}
	if s, ok := col.(*array.String); ok {
		return s.Value(pos)
	}
	return col.ValueStr(pos)
}

// WriteParquet writes h to w as a Snappy-compressed Parquet file.
//
// The Parquet writer closes its sink: if w is an io.Closer, it is closed
// once the file footer is written, and on a failed write.
func WriteParquet(w io.Writer, h *csv.HeaderedTable) error {
	tbl := ToArrow(memory.DefaultAllocator, h)
	defer tbl.Release()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(tbl.Schema(), w, props, arrowProps)
	if err != nil {
		return fmt.Errorf("parquet: create writer: %w", err)
	}

	chunk := tbl.NumRows()
	if chunk == 0 {
		chunk = 1
	}
	if err := writer.WriteTable(tbl, chunk); err != nil {
		writer.Close()
		return fmt.Errorf("parquet: write table: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("parquet: close writer: %w", err)
	}
	return nil
}

// SaveParquet writes h to a Parquet file at path, replacing any existing file.
func SaveParquet(path string, h *csv.HeaderedTable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("parquet: create %s: %w", path, err)
	}
	defer f.Close()

	// The Parquet writer closes any io.Closer sink; f is closed here instead.
	if err := WriteParquet(struct{ io.Writer }{f}, h); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("parquet: close %s: %w", path, err)
	}
	return nil
}

// ReadParquet reads a Parquet file into a HeaderedTable.
func ReadParquet(ctx context.Context, r parquet.ReaderAtSeeker) (*csv.HeaderedTable, error) {
	pf, err := file.NewParquetReader(r)
	if err != nil {
		return nil, fmt.Errorf("parquet: open: %w", err)
	}
	defer pf.Close()

	reader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("parquet: arrow reader: %w", err)
	}

	tbl, err := reader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("parquet: read table: %w", err)
	}
	defer tbl.Release()

	return FromArrow(tbl)
}

// OpenParquet reads the Parquet file at path into a HeaderedTable.
func OpenParquet(ctx context.Context, path string) (*csv.HeaderedTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("parquet: open %s: %w", path, err)
	}
	defer f.Close()

	return ReadParquet(ctx, f)
}
