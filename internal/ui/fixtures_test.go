package ui

import (
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/tabv/internal/dataset"
	"github.com/oakwood-commons/tabv/internal/navigator"
	"github.com/oakwood-commons/tabv/pkg/discovery"
	"github.com/oakwood-commons/tabv/pkg/loader"
)

// wideSheet has cols columns named column_1..column_N and rows rows.
func wideSheet(name string, cols, rows int) loader.Sheet {
	s := loader.Sheet{Name: name}
	for c := 1; c <= cols; c++ {
		s.Headers = append(s.Headers, fmt.Sprintf("column_%d", c))
	}
	for r := 1; r <= rows; r++ {
		row := make([]string, cols)
		for c := range row {
			row[c] = fmt.Sprintf("r%dc%d", r, c+1)
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

func testFiles() []*dataset.File {
	return []*dataset.File{
		dataset.NewLoaded("people", loader.Sheet{
			Headers: []string{"id", "name"},
			Rows:    [][]string{{"1", "ada"}, {"2", "bob"}},
		}),
		dataset.NewLoaded("sales", wideSheet("2023", 6, 3), wideSheet("2024", 2, 1)),
	}
}

func testController(t *testing.T, files []*dataset.File) *navigator.Controller {
	t.Helper()
	ctrl, err := navigator.New(files, loader.Func(func(path string) ([]loader.Sheet, error) {
		return nil, &loader.LoadError{Path: path, Err: fmt.Errorf("unreadable")}
	}), logr.Discard())
	if err != nil {
		t.Fatalf("navigator.New: %v", err)
	}
	return ctrl
}

func testModel(t *testing.T, mode KeyMode) *Model {
	t.Helper()
	m := NewModel(testController(t, testFiles()), Options{KeyMode: mode, NoColor: true, Logger: logr.Discard()})
	m.SetSize(80, 20)
	return m
}

func brokenFile() *dataset.File {
	return dataset.New(discovery.Entry{Path: "broken.csv", Name: "broken"})
}

func press(m *Model, keys ...tea.KeyPressMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(k)
	}
	return cmd
}

func text(s string) []tea.KeyPressMsg { return textMsgs(s) }

func ctrlKey(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl} }

var (
	enterKey = tea.KeyPressMsg{Code: tea.KeyEnter}
	escKey   = tea.KeyPressMsg{Code: tea.KeyEscape}
	bsKey    = tea.KeyPressMsg{Code: tea.KeyBackspace}
)
