package arrowtable

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/shapestone/shape-csvtable/pkg/csv"
)

func sample(t *testing.T) *csv.HeaderedTable {
	t.Helper()
	h, err := csv.ParseHeadedString("name,age,city\nAlice,30,Oslo\nBob,25\n")
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestSchema(t *testing.T) {
	schema := Schema(sample(t))

	if schema.NumFields() != 3 {
		t.Fatalf("NumFields() = %d, want 3", schema.NumFields())
	}
	for i, name := range []string{"name", "age", "city"} {
		f := schema.Field(i)
		if f.Name != name {
			t.Errorf("field %d name = %q, want %q", i, f.Name, name)
		}
		if f.Type.ID() != arrow.STRING {
			t.Errorf("field %d type = %s, want utf8", i, f.Type)
		}
	}
}

func TestToArrow(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	tbl := ToArrow(mem, sample(t))
	defer tbl.Release()

	if tbl.NumRows() != 2 {
		t.Errorf("NumRows() = %d, want 2", tbl.NumRows())
	}
	if tbl.NumCols() != 3 {
		t.Errorf("NumCols() = %d, want 3", tbl.NumCols())
	}

	want := [][]string{{"Alice", "Bob"}, {"30", "25"}, {"Oslo", ""}}
	for c, values := range want {
		col := tbl.Column(c).Data().Chunk(0).(*array.String)
		for r, v := range values {
			if col.Value(r) != v {
				t.Errorf("column %d row %d = %q, want %q", c, r, col.Value(r), v)
			}
		}
	}
}

func TestFromArrow_RoundTrip(t *testing.T) {
	h := sample(t)
	tbl := ToArrow(memory.NewGoAllocator(), h)
	defer tbl.Release()

	got, err := FromArrow(tbl)
	if err != nil {
		t.Fatalf("FromArrow() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got.Unheadered().Rows(), h.Unheadered().Rows()) {
		t.Errorf("FromArrow() rows = %q, want %q", got.Unheadered().Rows(), h.Unheadered().Rows())
	}
}

func TestFromArrow_TypedColumns(t *testing.T) {
	mem := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "label", Type: arrow.BinaryTypes.String, Nullable: true},
	}, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	b.Field(0).(*array.Int64Builder).AppendValues([]int64{7, 8}, nil)
	b.Field(1).(*array.StringBuilder).AppendValues([]string{"x", ""}, []bool{true, false})
	rec := b.NewRecord()
	defer rec.Release()

	tbl := array.NewTableFromRecords(schema, []arrow.Record{rec})
	defer tbl.Release()

	h, err := FromArrow(tbl)
	if err != nil {
		t.Fatalf("FromArrow() unexpected error: %v", err)
	}
	want := [][]string{{"id", "label"}, {"7", "x"}, {"8", ""}}
	if got := h.Unheadered().Rows(); !reflect.DeepEqual(got, want) {
		t.Errorf("FromArrow() rows = %q, want %q", got, want)
	}
}

func TestParquet_RoundTrip(t *testing.T) {
	h := sample(t)

	var buf bytes.Buffer
	if err := WriteParquet(&buf, h); err != nil {
		t.Fatalf("WriteParquet() unexpected error: %v", err)
	}

	got, err := ReadParquet(context.Background(), bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadParquet() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got.Unheadered().Rows(), h.Unheadered().Rows()) {
		t.Errorf("ReadParquet() rows = %q, want %q", got.Unheadered().Rows(), h.Unheadered().Rows())
	}
}

func TestParquet_HeaderOnly(t *testing.T) {
	h, _ := csv.ParseHeadedString("a,b\n")

	var buf bytes.Buffer
	if err := WriteParquet(&buf, h); err != nil {
		t.Fatalf("WriteParquet() unexpected error: %v", err)
	}
	got, err := ReadParquet(context.Background(), bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadParquet() unexpected error: %v", err)
	}
	if got.Len() != 0 || got.Width() != 2 {
		t.Errorf("ReadParquet() Len %d Width %d, want 0 and 2", got.Len(), got.Width())
	}
}

func TestSaveOpenParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.parquet")
	if err := SaveParquet(path, sample(t)); err != nil {
		t.Fatalf("SaveParquet() unexpected error: %v", err)
	}

	got, err := OpenParquet(context.Background(), path)
	if err != nil {
		t.Fatalf("OpenParquet() unexpected error: %v", err)
	}
	if v, _ := got.Cell(0, "city"); v != "Oslo" {
		t.Errorf("Cell(0, \"city\") = %q, want %q", v, "Oslo")
	}

	if _, err := OpenParquet(context.Background(), filepath.Join(t.TempDir(), "missing.parquet")); err == nil {
		t.Error("OpenParquet() expected error for a missing file")
	}
}

func TestSaveParquet_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.parquet")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := SaveParquet(path, sample(t)); err != nil {
		t.Fatalf("SaveParquet() unexpected error: %v", err)
	}
	got, err := OpenParquet(context.Background(), path)
	if err != nil {
		t.Fatalf("OpenParquet() unexpected error: %v", err)
	}
	if got.Len() != 2 {
		t.Errorf("Len() = %d, want 2", got.Len())
	}
}

// TestWriteParquet_FileSink tests that a file passed as the sink is closed by
// the writer and holds a complete Parquet file.
func TestWriteParquet_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.parquet")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := WriteParquet(f, sample(t)); err != nil {
		t.Fatalf("WriteParquet() unexpected error: %v", err)
	}
	if err := f.Close(); !errors.Is(err, os.ErrClosed) {
		t.Errorf("f.Close() after WriteParquet = %v, want os.ErrClosed", err)
	}

	got, err := OpenParquet(context.Background(), path)
	if err != nil {
		t.Fatalf("OpenParquet() unexpected error: %v", err)
	}
	if v, _ := got.Cell(1, "name"); v != "Bob" {
		t.Errorf("Cell(1, \"name\") = %q, want %q", v, "Bob")
	}
}

func TestReadParquet_NotParquet(t *testing.T) {
	if _, err := ReadParquet(context.Background(), bytes.NewReader([]byte("a,b\n1,2\n"))); err == nil {
		t.Error("ReadParquet() expected error for non-Parquet input")
	}
}
