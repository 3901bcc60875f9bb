// Package ui is the terminal front end: it turns key presses into navigator
// intents and draws the sidebar, table, status line and finder popup.
package ui

import (
	"fmt"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/tabv/internal/navigator"
)

const (
	// SidebarWidth is the width of the file list, separator excluded.
	SidebarWidth = 32
	// PopupWidth is the outer width of the finder popup.
	PopupWidth = 48

	minTableWidth = 20
	defaultWidth  = 80
	defaultHeight = 24
)

// Options configures a Model.
type Options struct {
	KeyMode KeyMode
	Theme   Theme
	NoColor bool
	Logger  logr.Logger
}

// Model is the bubbletea model of a viewer session.
type Model struct {
	ctrl   *navigator.Controller
	keys   KeyMap
	help   help.Model
	styles styles
	log    logr.Logger

	NoColor bool
	Width   int
	Height  int

	message    string
	messageErr bool
	quitting   bool
}

// NewModel wraps ctrl. A zero Theme selects the default preset.
func NewModel(ctrl *navigator.Controller, opts Options) *Model {
	theme := opts.Theme
	if theme.Accent == nil {
		theme = ThemePresets[DefaultThemeName]
	}
	h := help.New()
	if opts.NoColor {
		h.Styles = help.Styles{}
	}
	m := &Model{
		ctrl:    ctrl,
		keys:    NewKeyMap(opts.KeyMode),
		help:    h,
		styles:  newStyles(theme, opts.NoColor),
		log:     opts.Logger,
		NoColor: opts.NoColor,
	}
	m.SetSize(defaultWidth, defaultHeight)
	return m
}

// Controller returns the navigation controller driven by the model.
func (m *Model) Controller() *navigator.Controller { return m.ctrl }

// Quitting reports whether a quit intent was applied.
func (m *Model) Quitting() bool { return m.quitting }

// SetSize records the terminal size and hands the table area to the
// controller.
func (m *Model) SetSize(width, height int) {
	m.Width = max(width, 1)
	m.Height = max(height, 3)
	_, tw, bh := m.layout()
	m.ctrl.Resize(tw, bh-1)
}

// layout splits the screen: sidebar width (0 when hidden), table width and
// body height. Two lines are kept for the status line and the footer.
func (m *Model) layout() (sidebar, table, body int) {
	body = max(m.Height-2, 1)
	if m.Width >= SidebarWidth+1+minTableWidth {
		return SidebarWidth, m.Width - SidebarWidth - 1, body
	}
	return 0, m.Width, body
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	_, finding := m.ctrl.Mode().(navigator.Finding)
	intent, text := m.keys.Resolve(msg, finding)
	if text != "" {
		m.ctrl.Type(text)
		return nil
	}
	if intent == navigator.None {
		return nil
	}
	m.message, m.messageErr = "", false
	m.log.V(2).Info("key", "key", msg.String(), "intent", intent.String())

	effect := m.ctrl.Apply(intent)
	if effect.Copy != "" {
		if err := CopyToClipboard(effect.Copy); err != nil {
			m.log.Error(err, "clipboard write failed")
			m.message, m.messageErr = fmt.Sprintf("copy failed: %v", err), true
		} else {
			m.message = "copied"
		}
	}
	if effect.Quit {
		m.quitting = true
		return tea.Quit
	}
	return nil
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	return v
}
