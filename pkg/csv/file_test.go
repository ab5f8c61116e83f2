package csv_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/shapestone/shape-csvtable/pkg/csv"
)

func TestTable_SaveAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	table := csv.NewTable([][]string{{"a", "b,c"}, {"d"}})

	if err := table.Save(path); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "a,\"b,c\"\r\nd\r\n" {
		t.Errorf("file contents = %q", raw)
	}

	got, err := csv.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got.Rows(), table.Rows()) {
		t.Errorf("ReadFile() rows = %q, want %q", got.Rows(), table.Rows())
	}
}

func TestTable_Save_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("old,contents,that,are,longer\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := csv.NewTable([][]string{{"new"}}).Save(path); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	raw, _ := os.ReadFile(path)
	if string(raw) != "new\r\n" {
		t.Errorf("file contents = %q, want %q", raw, "new\r\n")
	}
}

func TestHeaderedTable_SaveAndReadHeadedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	h, err := csv.ParseHeadedString("name,age\nAlice,30\n")
	if err != nil {
		t.Fatal(err)
	}

	if err := h.Save(path); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	got, err := csv.ReadHeadedFile(path)
	if err != nil {
		t.Fatalf("ReadHeadedFile() unexpected error: %v", err)
	}
	if v, _ := got.Cell(0, "age"); v != "30" {
		t.Errorf("Cell(0, \"age\") = %q, want %q", v, "30")
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := csv.ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile() error = %v, want fs.ErrNotExist", err)
	}

	if _, err := csv.ReadHeadedFile(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("ReadHeadedFile() expected error")
	}
}

func TestReadFile_InvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("a,\xff\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := csv.ReadFile(path)
	if !errors.Is(err, csv.ErrInvalidUTF8) {
		t.Errorf("ReadFile() error = %v, want ErrInvalidUTF8", err)
	}
	if table != nil {
		t.Error("ReadFile() returned a table alongside the error")
	}
}

func TestTable_Save_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "data.csv")
	if err := csv.NewTable([][]string{{"a"}}).Save(path); err == nil {
		t.Error("Save() expected error for a missing directory")
	}
}
