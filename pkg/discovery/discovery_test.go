package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644))
}

func TestDiscoverMatchesAndSorts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sales.csv"))
	writeFile(t, filepath.Join(root, "archive", "2023.csv"))
	writeFile(t, filepath.Join(root, "notes.txt"))
	writeFile(t, filepath.Join(root, "book.xlsx"))

	entries, err := Discover(root, []string{"*.csv", "*.xlsx"})
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"archive/2023", "book", "sales"}, names)
	assert.Equal(t, filepath.Join(root, "archive", "2023.csv"), entries[0].Path)
}

func TestDiscoverSkipsHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".git", "objects.csv"))
	writeFile(t, filepath.Join(root, "visible.csv"))

	entries, err := Discover(root, []string{"*.csv"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "visible", entries[0].Name)
}

func TestDiscoverNoFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "readme.md"))

	_, err := Discover(root, []string{"*.csv"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestDiscoverSingleFileRoot(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "only.data")
	writeFile(t, path)

	entries, err := Discover(path, []string{"*.csv"})
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Path: path, Name: "only"}}, entries)
}

func TestDiscoverInvalidPattern(t *testing.T) {
	_, err := Discover(t.TempDir(), []string{"[bad"})
	assert.Error(t, err)
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"), []string{"*.csv"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoFiles)
}

// failingWalk reports err for every entry whose base name is in fail.
func failingWalk(t *testing.T, err error, fail ...string) {
	t.Helper()
	orig := walkDir
	t.Cleanup(func() { walkDir = orig })
	walkDir = func(root string, fn fs.WalkDirFunc) error {
		return orig(root, func(path string, d fs.DirEntry, werr error) error {
			for _, name := range fail {
				if werr == nil && path != root && d.Name() == name {
					return fn(path, d, err)
				}
			}
			return fn(path, d, werr)
		})
	}
}

func TestDiscoverSkipsUnreadableEntries(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "locked", "secret.csv"))
	writeFile(t, filepath.Join(root, "gone.csv"))
	writeFile(t, filepath.Join(root, "sales.csv"))
	failingWalk(t, fs.ErrPermission, "locked", "gone.csv")

	entries, err := Discover(root, []string{"*.csv"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sales", entries[0].Name)
}

func TestDiscoverRootWalkErrorIsReturned(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sales.csv"))
	orig := walkDir
	t.Cleanup(func() { walkDir = orig })
	walkDir = func(root string, fn fs.WalkDirFunc) error {
		return fn(root, nil, fs.ErrPermission)
	}

	_, err := Discover(root, []string{"*.csv"})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrPermission)
}
