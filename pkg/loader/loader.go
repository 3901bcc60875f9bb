// Package loader turns table files into ordered sheets of string cells.
//
// The format is chosen by file extension:
//
//   - .csv, .tsv: one unnamed sheet, first record is the header row
//   - .xlsx, .xlsm: one sheet per worksheet in workbook order
//   - .json, .yaml, .yml, .toml: record documents (see records.go)
//
// Unknown extensions are read as CSV. Every returned row has exactly as many
// cells as the sheet has headers.
package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Sheet is one named table. An empty Name marks the only sheet of a file
// format without sheet names (CSV, a bare array of records).
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Width returns the number of columns.
func (s Sheet) Width() int { return len(s.Headers) }

// LoadError reports a failure to read or parse a file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// errNoSheets is wrapped when a file parses but holds no table.
var errNoSheets = errors.New("no sheets with a header row")

// Loader loads every sheet of the file at path.
type Loader interface {
	Load(path string) ([]Sheet, error)
}

// Func adapts a function to Loader.
type Func func(path string) ([]Sheet, error)

// Load calls f.
func (f Func) Load(path string) ([]Sheet, error) { return f(path) }

// FileLoader dispatches on file extension.
type FileLoader struct{}

// Load implements Loader. Errors are always *LoadError.
func (FileLoader) Load(path string) ([]Sheet, error) {
	return Load(path)
}

// Load reads path with the parser selected by its extension.
func Load(path string) ([]Sheet, error) {
	var (
		sheets []Sheet
		err    error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		sheets, err = loadDelimited(path, '\t')
	case ".xlsx", ".xlsm":
		sheets, err = loadWorkbook(path)
	case ".json", ".yaml", ".yml":
		sheets, err = loadYAMLRecords(path)
	case ".toml":
		sheets, err = loadTOMLRecords(path)
	default:
		sheets, err = loadDelimited(path, ',')
	}
	if err == nil && len(sheets) == 0 {
		err = errNoSheets
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return sheets, nil
}

// normalizeRow pads or truncates row to width cells.
func normalizeRow(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}

// headerRow trims header cells and names blanks after their position.
func headerRow(cells []string) []string {
	headers := make([]string, len(cells))
	for i, h := range cells {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		headers[i] = h
	}
	return headers
}
