package csv

import (
	"fmt"
	"os"
)

// Save writes the table to path as CSV, replacing any existing file.
func (t *Table) Save(path string) error {
	return writeFile(path, t.Bytes())
}

// ReadFile reads the file at path and parses it as an unheadered Table.
// The first row is an ordinary record, even if the file has a header.
func ReadFile(path string) (*Table, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Save writes the table to path as CSV, replacing any existing file.
func (h *HeaderedTable) Save(path string) error {
	return writeFile(path, h.Bytes())
}

// ReadHeadedFile reads the file at path and parses it as a HeaderedTable,
// taking the first row as the header.
func ReadHeadedFile(path string) (*HeaderedTable, error) {
	t, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewHeaderedTable(t), nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("csv: read %s: %w", path, err)
	}
	return data, nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("csv: write %s: %w", path, err)
	}
	return nil
}
