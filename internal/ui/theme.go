package ui

import (
	"image/color"
	"sort"

	"charm.land/lipgloss/v2"
)

// Theme defines the colors used across the UI.
type Theme struct {
	Accent     color.Color // Titles, active sidebar entry, finder prompt
	Muted      color.Color // Sidebar entries, status text, indicators
	HeaderFG   color.Color // Table header text
	HeaderBG   color.Color // Table header background
	SelectedFG color.Color // Selected row foreground
	SelectedBG color.Color // Selected row background
	ColumnBG   color.Color // Selected column background
	CellFG     color.Color // Selected cell foreground
	CellBG     color.Color // Selected cell background
	Separator  color.Color // Sidebar separator and popup border
	Error      color.Color // Inline load errors
	Match      color.Color // Matched characters in finder results
}

// ThemePresets holds the built-in themes by name.
var ThemePresets = map[string]Theme{
	"dark": {
		Accent:     lipgloss.Color("81"),
		Muted:      lipgloss.Color("246"),
		HeaderFG:   lipgloss.Color("81"),
		HeaderBG:   lipgloss.Color("236"),
		SelectedFG: lipgloss.Color("250"),
		SelectedBG: lipgloss.Color("24"),
		ColumnBG:   lipgloss.Color("235"),
		CellFG:     lipgloss.Color("16"),
		CellBG:     lipgloss.Color("81"),
		Separator:  lipgloss.Color("238"),
		Error:      lipgloss.Color("203"),
		Match:      lipgloss.Color("214"),
	},
	"light": {
		Accent:     lipgloss.Color("25"),
		Muted:      lipgloss.Color("242"),
		HeaderFG:   lipgloss.Color("25"),
		HeaderBG:   lipgloss.Color("254"),
		SelectedFG: lipgloss.Color("235"),
		SelectedBG: lipgloss.Color("153"),
		ColumnBG:   lipgloss.Color("255"),
		CellFG:     lipgloss.Color("231"),
		CellBG:     lipgloss.Color("25"),
		Separator:  lipgloss.Color("250"),
		Error:      lipgloss.Color("160"),
		Match:      lipgloss.Color("166"),
	},
}

// DefaultThemeName is used when no theme is configured.
const DefaultThemeName = "dark"

// ThemeNames returns the preset names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(ThemePresets))
	for name := range ThemePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName looks up a preset.
func ThemeByName(name string) (Theme, bool) {
	t, ok := ThemePresets[name]
	return t, ok
}

type styles struct {
	header        lipgloss.Style
	row           lipgloss.Style
	selectedRow   lipgloss.Style
	selectedCol   lipgloss.Style
	selectedCell  lipgloss.Style
	indicator     lipgloss.Style
	scrollTrack   lipgloss.Style
	scrollThumb   lipgloss.Style
	sidebarTitle  lipgloss.Style
	sidebarItem   lipgloss.Style
	sidebarActive lipgloss.Style
	separator     lipgloss.Style
	status        lipgloss.Style
	err           lipgloss.Style
	popup         lipgloss.Style
	prompt        lipgloss.Style
	result        lipgloss.Style
	resultActive  lipgloss.Style
	match         lipgloss.Style
}

// newStyles derives render styles from t.
func newStyles(t Theme, noColor bool) styles {
	base := lipgloss.NewStyle()
	popup := base.Border(lipgloss.RoundedBorder())
	if noColor {
		// Reverse video is the only attribute kept; the selected cell shows
		// as a plain gap in the reversed row.
		return styles{
			header:        base,
			row:           base,
			selectedRow:   base.Reverse(true),
			selectedCol:   base,
			selectedCell:  base,
			indicator:     base,
			scrollTrack:   base,
			scrollThumb:   base,
			sidebarTitle:  base,
			sidebarItem:   base,
			sidebarActive: base,
			separator:     base,
			status:        base,
			err:           base,
			popup:         popup,
			prompt:        base,
			result:        base,
			resultActive:  base.Reverse(true),
			match:         base,
		}
	}
	return styles{
		header:        base.Bold(true).Foreground(t.HeaderFG).Background(t.HeaderBG),
		row:           base,
		selectedRow:   base.Foreground(t.SelectedFG).Background(t.SelectedBG),
		selectedCol:   base.Background(t.ColumnBG),
		selectedCell:  base.Bold(true).Foreground(t.CellFG).Background(t.CellBG),
		indicator:     base.Foreground(t.Muted),
		scrollTrack:   base.Foreground(t.Separator),
		scrollThumb:   base.Foreground(t.Accent),
		sidebarTitle:  base.Bold(true).Foreground(t.Accent),
		sidebarItem:   base.Foreground(t.Muted),
		sidebarActive: base.Bold(true).Foreground(t.Accent),
		separator:     base.Foreground(t.Separator),
		status:        base.Foreground(t.Accent),
		err:           base.Foreground(t.Error),
		popup:         popup.BorderForeground(t.Separator),
		prompt:        base.Bold(true).Foreground(t.Accent),
		result:        base.Foreground(t.Muted),
		resultActive:  base.Foreground(t.SelectedFG).Background(t.SelectedBG),
		match:         base.Bold(true).Foreground(t.Match),
	}
}
