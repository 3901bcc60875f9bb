package cmd

import (
	"fmt"
	"strings"

	"github.com/oakwood-commons/tabv/internal/ui"
)

type themeSelectionError struct {
	Selected     string
	Available    []string
	DefaultTheme string
}

func (e themeSelectionError) Error() string {
	return fmt.Sprintf("unknown theme %q\navailable themes: %v\ndefault theme: %s", e.Selected, e.Available, e.DefaultTheme)
}

type keyModeError struct {
	Selected string
}

func (e keyModeError) Error() string {
	modes := make([]string, len(ui.ValidKeyModes))
	for i, m := range ui.ValidKeyModes {
		modes[i] = string(m)
	}
	return fmt.Sprintf("invalid keymap %q (expected %s)", e.Selected, strings.Join(modes, " or "))
}

// validateRun checks the names that cannot be checked by flag parsing.
func validateRun(theme, keyMode string) error {
	if _, ok := ui.ThemeByName(theme); !ok {
		return themeSelectionError{Selected: theme, Available: ui.ThemeNames(), DefaultTheme: ui.DefaultThemeName}
	}
	if !ui.IsValidKeyMode(keyMode) {
		return keyModeError{Selected: keyMode}
	}
	return nil
}
