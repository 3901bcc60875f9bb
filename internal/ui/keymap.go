package ui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/tabv/internal/navigator"
)

// KeyMode represents the keybinding mode for the UI.
type KeyMode string

const (
	// KeyModeVim enables vim-style keybindings (j/k/h/l navigation, ; finder).
	KeyModeVim KeyMode = "vim"
	// KeyModeEmacs enables emacs-style keybindings with ctrl and alt modifiers.
	KeyModeEmacs KeyMode = "emacs"
)

// DefaultKeyMode is the default keybinding mode.
const DefaultKeyMode = KeyModeVim

// ValidKeyModes lists all valid key modes for validation.
var ValidKeyModes = []KeyMode{KeyModeVim, KeyModeEmacs}

// IsValidKeyMode checks if a key mode string is valid.
func IsValidKeyMode(mode string) bool {
	for _, m := range ValidKeyModes {
		if string(m) == mode {
			return true
		}
	}
	return false
}

// binding ties a key binding to the intent it produces.
type binding struct {
	key.Binding
	intent navigator.Intent
}

func bind(intent navigator.Intent, keyHelp, desc string, keys ...string) binding {
	return binding{
		Binding: key.NewBinding(key.WithKeys(keys...), key.WithHelp(keyHelp, desc)),
		intent:  intent,
	}
}

// KeyMap holds the bindings of one key mode, split by navigation mode.
type KeyMap struct {
	Mode      KeyMode
	Browse    []binding
	Find      []binding
	ForceQuit key.Binding
}

// NewKeyMap returns the bindings for mode, falling back to vim.
func NewKeyMap(mode KeyMode) KeyMap {
	km := KeyMap{
		Mode:      mode,
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
	if mode == KeyModeEmacs {
		km.Browse = []binding{
			bind(navigator.NextRow, "C-n/C-p", "row", "ctrl+n", "down"),
			bind(navigator.PrevRow, "C-p", "row up", "ctrl+p", "up"),
			bind(navigator.NextCol, "C-f/C-b", "column", "ctrl+f", "right"),
			bind(navigator.PrevCol, "C-b", "column left", "ctrl+b", "left"),
			bind(navigator.NextSheet, "M-n/M-p", "sheet", "alt+n"),
			bind(navigator.PrevSheet, "M-p", "previous sheet", "alt+p"),
			bind(navigator.NextFile, "M-N/M-P", "file", "alt+N", "alt+shift+n"),
			bind(navigator.PrevFile, "M-P", "previous file", "alt+P", "alt+shift+p"),
			bind(navigator.OpenFinder, "C-s", "find sheet", "ctrl+s"),
			bind(navigator.CopyCell, "M-w", "copy cell", "alt+w"),
			bind(navigator.Quit, "C-q", "quit", "ctrl+q"),
		}
		km.Find = []binding{
			bind(navigator.FinderNextResult, "C-n/C-p", "select", "ctrl+n", "down"),
			bind(navigator.FinderPrevResult, "C-p", "select up", "ctrl+p", "up"),
			bind(navigator.ConfirmFinder, "enter", "jump", "enter"),
			bind(navigator.CancelFinder, "C-g", "cancel", "ctrl+g", "esc"),
			bind(navigator.FinderDeleteBackward, "backspace", "delete", "backspace"),
			bind(navigator.FinderClear, "C-u", "clear", "ctrl+u"),
		}
		return km
	}

	km.Mode = KeyModeVim
	km.Browse = []binding{
		bind(navigator.NextRow, "j/k", "row", "j", "down"),
		bind(navigator.PrevRow, "k", "row up", "k", "up"),
		bind(navigator.NextCol, "h/l", "column", "l", "right"),
		bind(navigator.PrevCol, "h", "column left", "h", "left"),
		bind(navigator.NextSheet, "C-j/C-k", "sheet", "ctrl+j"),
		bind(navigator.PrevSheet, "C-k", "previous sheet", "ctrl+k"),
		bind(navigator.NextFile, "J/K", "file", "J", "shift+j"),
		bind(navigator.PrevFile, "K", "previous file", "K", "shift+k"),
		bind(navigator.OpenFinder, ";", "find sheet", ";", "/"),
		bind(navigator.CopyCell, "y", "copy cell", "y"),
		bind(navigator.Quit, "q", "quit", "q", "esc"),
	}
	km.Find = []binding{
		bind(navigator.FinderNextResult, "C-j/C-k", "select", "ctrl+j", "ctrl+n", "down"),
		bind(navigator.FinderPrevResult, "C-k", "select up", "ctrl+k", "ctrl+p", "up"),
		bind(navigator.ConfirmFinder, "enter", "jump", "enter"),
		bind(navigator.CancelFinder, "esc", "cancel", "esc"),
		bind(navigator.FinderDeleteBackward, "backspace", "delete", "backspace"),
		bind(navigator.FinderClear, "C-u", "clear", "ctrl+u"),
	}
	return km
}

// Resolve maps a key press to an intent. While finding, unbound printable
// keys come back as text for the query.
func (km KeyMap) Resolve(msg tea.KeyPressMsg, finding bool) (navigator.Intent, string) {
	if key.Matches(msg, km.ForceQuit) {
		return navigator.Quit, ""
	}
	bindings := km.Browse
	if finding {
		bindings = km.Find
	}
	for _, b := range bindings {
		if key.Matches(msg, b.Binding) {
			return b.intent, ""
		}
	}
	if finding && msg.Text != "" && !msg.Mod.Contains(tea.ModCtrl) && !msg.Mod.Contains(tea.ModAlt) {
		return navigator.None, msg.Text
	}
	return navigator.None, ""
}

// ShortHelp returns the bindings shown in the footer. Reverse-direction
// bindings share the help entry of their forward twin and are left out.
func (km KeyMap) ShortHelp(finding bool) []key.Binding {
	bindings := km.Browse
	if finding {
		bindings = km.Find
	}
	var out []key.Binding
	for _, b := range bindings {
		switch b.intent {
		case navigator.PrevRow, navigator.PrevCol, navigator.PrevSheet, navigator.PrevFile, navigator.FinderPrevResult:
			continue
		}
		out = append(out, b.Binding)
	}
	return out
}
