// Package dataset holds the files a viewer session browses and loads them on
// first use.
package dataset

import (
	"errors"

	"github.com/oakwood-commons/tabv/pkg/discovery"
	"github.com/oakwood-commons/tabv/pkg/loader"
)

// Sheet is re-exported so callers do not need the loader package.
type Sheet = loader.Sheet

// State is the load state of a File.
type State int

const (
	// Unloaded files have been discovered but not read.
	Unloaded State = iota
	// Loaded files hold at least one sheet.
	Loaded
	// Failed files hold the error of their last load attempt.
	Failed
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unloaded"
	}
}

var errEmpty = errors.New("file has no sheets")

// File is one discovered table file. Its sheets are only readable after
// EnsureLoaded succeeded and never change afterwards.
type File struct {
	Name string
	Path string

	state  State
	sheets []Sheet
	err    error
}

// New returns an unloaded file for a discovery entry.
func New(e discovery.Entry) *File {
	return &File{Name: e.Name, Path: e.Path}
}

// NewLoaded returns a file that already holds sheets.
func NewLoaded(name string, sheets ...Sheet) *File {
	f := &File{Name: name}
	if len(sheets) > 0 {
		f.state = Loaded
		f.sheets = sheets
	}
	return f
}

// FromEntries wraps every entry in an unloaded File, keeping their order.
func FromEntries(entries []discovery.Entry) []*File {
	files := make([]*File, len(entries))
	for i, e := range entries {
		files[i] = New(e)
	}
	return files
}

// EnsureLoaded reads the file with l unless it is already loaded. A failed
// file is retried. The returned error is also kept on the file.
func (f *File) EnsureLoaded(l loader.Loader) error {
	if f.state == Loaded {
		return nil
	}
	sheets, err := l.Load(f.Path)
	if err == nil && len(sheets) == 0 {
		err = &loader.LoadError{Path: f.Path, Err: errEmpty}
	}
	if err != nil {
		f.state = Failed
		f.err = err
		return err
	}
	f.state = Loaded
	f.sheets = sheets
	f.err = nil
	return nil
}

// State reports the load state.
func (f *File) State() State { return f.state }

// Loaded reports whether sheets are available.
func (f *File) Loaded() bool { return f.state == Loaded }

// Err returns the last load error, if the file failed.
func (f *File) Err() error { return f.err }

// Sheets returns the loaded sheets, nil before a successful load.
func (f *File) Sheets() []Sheet { return f.sheets }

// SheetCount returns the number of loaded sheets.
func (f *File) SheetCount() int { return len(f.sheets) }

// Sheet returns sheet i when loaded and in range.
func (f *File) Sheet(i int) (Sheet, bool) {
	if i < 0 || i >= len(f.sheets) {
		return Sheet{}, false
	}
	return f.sheets[i], true
}

// SingleUnnamed reports whether the file has exactly one sheet without a
// name, the shape of a plain CSV.
func (f *File) SingleUnnamed() bool {
	return len(f.sheets) == 1 && f.sheets[0].Name == ""
}
