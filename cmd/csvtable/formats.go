package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shapestone/shape-csvtable/pkg/arrowtable"
	"github.com/shapestone/shape-csvtable/pkg/csv"
	"github.com/shapestone/shape-csvtable/pkg/xlsxtable"
)

type format int

const (
	formatCSV format = iota
	formatXLSX
	formatParquet
)

func (f format) String() string {
	switch f {
	case formatCSV:
		return "csv"
	case formatXLSX:
		return "xlsx"
	case formatParquet:
		return "parquet"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// formatOf picks a table format from the file extension.
func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return formatCSV, nil
	case ".xlsx":
		return formatXLSX, nil
	case ".parquet":
		return formatParquet, nil
	default:
		return 0, fmt.Errorf("unsupported file type %q (want .csv, .xlsx or .parquet)", filepath.Ext(path))
	}
}

// load reads a headered table from path in the format named by its extension.
func load(ctx context.Context, path string) (*csv.HeaderedTable, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}

	switch f {
	case formatXLSX:
		t, err := xlsxtable.Open(path, "")
		if err != nil {
			return nil, err
		}
		return csv.NewHeaderedTable(t), nil
	case formatParquet:
		return arrowtable.OpenParquet(ctx, path)
	default:
		return csv.ReadHeadedFile(path)
	}
}

// store writes h to path in the format named by its extension.
func store(path string, h *csv.HeaderedTable) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}

	switch f {
	case formatXLSX:
		return xlsxtable.Save(path, h.Unheadered(), xlsxtable.DefaultSheet)
	case formatParquet:
		return arrowtable.SaveParquet(path, h)
	default:
		return h.Save(path)
	}
}
