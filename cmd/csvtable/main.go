// Command csvtable inspects, normalizes and converts CSV tables.
//
// Usage:
//
//	csvtable view FILE
//	csvtable info FILE
//	csvtable normalize IN [OUT]
//	csvtable convert IN OUT
//	csvtable --version
//
// FILE, IN and OUT may be .csv, .xlsx or .parquet files; the first row of a
// CSV file is its header.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/shapestone/shape-csvtable/internal/config"
	"github.com/shapestone/shape-csvtable/internal/logging"
	"github.com/shapestone/shape-csvtable/internal/viewer"
	"github.com/shapestone/shape-csvtable/pkg/csv"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = `usage:
  csvtable view FILE          browse a table in the terminal
  csvtable info FILE          print row count, width and header
  csvtable normalize IN [OUT] rewrite CSV with CRLF rows and minimal quoting
  csvtable convert IN OUT     convert between .csv, .xlsx and .parquet
  csvtable --version
`

// errUsage reports bad command-line arguments.
var errUsage = errors.New("invalid arguments")

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("csvtable %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error: load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Debug("configuration loaded", "config", cfg.String())

	if err := run(context.Background(), cfg, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			if err != errUsage {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// run dispatches a subcommand. Output meant for the user goes to out.
func run(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, args := args[0], args[1:]
	log := logging.WithFields("command", cmd)

	var err error
	switch cmd {
	case "view":
		if len(args) != 1 {
			return errUsage
		}
		err = view(ctx, cfg, args[0])
	case "info":
		if len(args) != 1 {
			return errUsage
		}
		err = info(ctx, args[0], out)
	case "normalize":
		if len(args) < 1 || len(args) > 2 {
			return errUsage
		}
		dst := "-"
		if len(args) == 2 {
			dst = args[1]
		}
		err = normalize(args[0], dst, out)
	case "convert":
		if len(args) != 2 {
			return errUsage
		}
		err = convert(ctx, args[0], args[1])
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	log.Info("done", "args", args)
	return nil
}

func view(ctx context.Context, cfg *config.Config, path string) error {
	h, err := load(ctx, path)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viewer.New(h, filepath.Base(path), cfg.View), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}

func info(ctx context.Context, path string, out io.Writer) error {
	h, err := load(ctx, path)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "file:    %s\n", path)
	fmt.Fprintf(out, "rows:    %d\n", h.Len())
	fmt.Fprintf(out, "width:   %d\n", h.Width())
	fmt.Fprintf(out, "columns: %d\n", h.ColumnCount())
	fmt.Fprintf(out, "header:  %s\n", headerLine(h.Header()))
	return nil
}

// normalize rewrites a CSV file through the parser without a header pass, so
// ragged rows stay ragged. dst "-" means out. Neither side may name a
// workbook or Parquet file.
func normalize(src, dst string, out io.Writer) error {
	if err := csvOnly(src); err != nil {
		return err
	}
	if dst != "-" {
		if err := csvOnly(dst); err != nil {
			return err
		}
	}

	t, err := csv.ReadFile(src)
	if err != nil {
		return err
	}
	slog.Debug("parsed", "path", src, "rows", t.Len())

	if dst == "-" {
		_, err := t.WriteTo(out)
		return err
	}
	return t.Save(dst)
}

// csvOnly rejects a path whose extension names a non-CSV table format.
// Paths without a recognised extension are treated as CSV.
func csvOnly(path string) error {
	if f, err := formatOf(path); err == nil && f != formatCSV {
		return fmt.Errorf("%w: normalize works on CSV, not %s (%s); use convert", errUsage, f, path)
	}
	return nil
}

func convert(ctx context.Context, src, dst string) error {
	h, err := load(ctx, src)
	if err != nil {
		return err
	}
	slog.Debug("loaded", "path", src, "rows", h.Len(), "width", h.Width())

	return store(dst, h)
}

// headerLine renders a header as one CSV record without the line ending.
func headerLine(header []string) string {
	return strings.TrimSuffix(csv.NewTable([][]string{header}).String(), "\r\n")
}
