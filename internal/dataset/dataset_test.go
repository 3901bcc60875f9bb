package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/tabv/pkg/discovery"
	"github.com/oakwood-commons/tabv/pkg/loader"
)

type countingLoader struct {
	calls  int
	sheets []Sheet
	err    error
}

func (c *countingLoader) Load(string) ([]Sheet, error) {
	c.calls++
	return c.sheets, c.err
}

func TestFromEntries(t *testing.T) {
	files := FromEntries([]discovery.Entry{{Path: "a.csv", Name: "a"}, {Path: "b.csv", Name: "b"}})
	require.Len(t, files, 2)
	assert.Equal(t, "a", files[0].Name)
	assert.Equal(t, "b.csv", files[1].Path)
	assert.Equal(t, Unloaded, files[0].State())
	assert.Zero(t, files[0].SheetCount())
}

func TestEnsureLoadedOnce(t *testing.T) {
	l := &countingLoader{sheets: []Sheet{{Headers: []string{"a"}}}}
	f := New(discovery.Entry{Path: "a.csv", Name: "a"})

	require.NoError(t, f.EnsureLoaded(l))
	require.NoError(t, f.EnsureLoaded(l))
	assert.Equal(t, 1, l.calls)
	assert.True(t, f.Loaded())
	assert.True(t, f.SingleUnnamed())

	s, ok := f.Sheet(0)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, s.Headers)
	_, ok = f.Sheet(1)
	assert.False(t, ok)
}

func TestEnsureLoadedFailureIsKeptAndRetried(t *testing.T) {
	boom := &loader.LoadError{Path: "bad.csv", Err: errors.New("boom")}
	l := &countingLoader{err: boom}
	f := New(discovery.Entry{Path: "bad.csv", Name: "bad"})

	err := f.EnsureLoaded(l)
	require.Error(t, err)
	assert.Equal(t, Failed, f.State())
	assert.Equal(t, boom, f.Err())
	assert.Nil(t, f.Sheets())

	l.err = nil
	l.sheets = []Sheet{{Name: "s", Headers: []string{"x"}}}
	require.NoError(t, f.EnsureLoaded(l))
	assert.Equal(t, 2, l.calls)
	assert.NoError(t, f.Err())
	assert.False(t, f.SingleUnnamed())
}

func TestEnsureLoadedEmptyResultFails(t *testing.T) {
	f := New(discovery.Entry{Path: "empty.csv", Name: "empty"})
	err := f.EnsureLoaded(&countingLoader{})

	var lerr *loader.LoadError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, Failed, f.State())
}

func TestNewLoaded(t *testing.T) {
	f := NewLoaded("book", Sheet{Name: "one"}, Sheet{Name: "two"})
	assert.True(t, f.Loaded())
	assert.Equal(t, 2, f.SheetCount())
	assert.NoError(t, f.EnsureLoaded(&countingLoader{err: errors.New("unused")}))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unloaded", Unloaded.String())
	assert.Equal(t, "loaded", Loaded.String())
	assert.Equal(t, "failed", Failed.String())
}
