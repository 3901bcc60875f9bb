package ui

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/tabv/internal/navigator"
)

// RunConfig holds the per-run terminal settings.
type RunConfig struct {
	// Width and Height force a window size; 0 keeps the terminal's.
	Width     int
	Height    int
	StartKeys []string
}

// Run starts the interactive program on ctrl. Extra ProgramOptions (e.g.
// custom IO) are passed through to tea.NewProgram.
func Run(ctrl *navigator.Controller, opts Options, cfg RunConfig, progOpts ...tea.ProgramOption) error {
	m := NewModel(ctrl, opts)
	if cfg.Width > 0 || cfg.Height > 0 {
		w, h := ResolveSize(cfg.Width, cfg.Height)
		m.SetSize(w, h)
		progOpts = append(progOpts, tea.WithWindowSize(w, h))
	} else {
		m.SetSize(ResolveSize(0, 0))
	}

	ApplyStartupKeys(m, cfg.StartKeys)
	if m.Quitting() {
		return nil
	}

	prog := tea.NewProgram(m, progOpts...)
	_, err := prog.Run()
	return err
}

// SnapshotConfig configures RenderSnapshot.
type SnapshotConfig struct {
	Width     int
	Height    int
	StartKeys []string
}

// RenderSnapshot renders a single frame after applying the startup keys.
func RenderSnapshot(ctrl *navigator.Controller, opts Options, cfg SnapshotConfig) string {
	m := NewModel(ctrl, opts)
	m.SetSize(ResolveSize(cfg.Width, cfg.Height))
	ApplyStartupKeys(m, cfg.StartKeys)
	return m.Render()
}

// ResolveSize fills unset dimensions from the terminal on stdout, falling
// back to 80x24.
func ResolveSize(width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if width <= 0 {
				width = w
			}
			if height <= 0 {
				height = h
			}
		}
	}
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}
