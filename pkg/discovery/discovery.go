// Package discovery enumerates candidate table files under a root path
// without reading their contents.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoFiles is returned when a root contains no file matching any pattern.
var ErrNoFiles = errors.New("no tabular files found")

// walkDir is swapped in tests to inject walk errors.
var walkDir = filepath.WalkDir

// Entry is one discovered file.
type Entry struct {
	// Path is the file path as reachable from the working directory.
	Path string
	// Name is the display name: the path relative to the root, slash
	// separated, without its extension.
	Name string
}

// Discover walks root and returns every regular file whose base name matches
// one of patterns, ordered by path. Hidden directories are skipped. When root
// is a file it is returned as the only entry regardless of patterns.
func Discover(root string, patterns []string) ([]Entry, error) {
	if root == "" {
		root = "."
	}
	for _, p := range patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return []Entry{{Path: root, Name: displayName(filepath.Base(root))}}, nil
	}

	var entries []Entry
	err = walkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// Unreadable or vanished entries are skipped.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !matchAny(patterns, d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = d.Name()
		}
		entries = append(entries, Entry{Path: path, Name: displayName(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoFiles, root)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

func displayName(rel string) string {
	rel = filepath.ToSlash(rel)
	return strings.TrimSuffix(rel, filepath.Ext(rel))
}
