package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/tabv/internal/dataset"
	"github.com/oakwood-commons/tabv/internal/finder"
	"github.com/oakwood-commons/tabv/internal/navigator"
	"github.com/oakwood-commons/tabv/internal/viewport"
)

const (
	overflowLeftGlyph  = "<"
	overflowRightGlyph = ">"
	ellipsis           = "…"
	scrollThumbGlyph   = "┃"
	scrollTrackGlyph   = "│"
)

// Render draws one frame.
func (m *Model) Render() string {
	sw, tw, bh := m.layout()
	table := m.renderTableArea(tw, bh)
	body := table
	if sw > 0 {
		sep := m.styles.separator.Render(strings.TrimSuffix(strings.Repeat("│\n", bh), "\n"))
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(sw, bh), sep, table)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatus(), m.renderFooter())
}

// block pads or clips lines to exactly width×height cells.
func block(lines []string, width, height int) string {
	out := make([]string, height)
	for i := range out {
		if i < len(lines) {
			out[i] = lines[i]
		}
		if pad := width - lipgloss.Width(out[i]); pad > 0 {
			out[i] += strings.Repeat(" ", pad)
		}
	}
	return strings.Join(out, "\n")
}

// fit truncates s to width cells and pads it on the right.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(sanitize(s), width, ellipsis), width)
}

var controlReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

func sanitize(s string) string { return controlReplacer.Replace(s) }

func (m *Model) renderSidebar(width, height int) string {
	view := m.ctrl.View()
	files := m.ctrl.Files()

	lines := []string{m.styles.sidebarTitle.Render(fit(fmt.Sprintf("Files (%d)", len(files)), width))}
	active := 0
	for i, f := range files {
		marker, style := "  ", m.styles.sidebarItem
		if i == view.File {
			marker, style = "▸ ", m.styles.sidebarActive
			active = len(lines)
		}
		name := f.Name
		if f.State() == dataset.Failed {
			name += " !"
		}
		lines = append(lines, style.Render(fit(marker+name, width)))

		if i != view.File || !f.Loaded() || f.SingleUnnamed() {
			continue
		}
		for j, s := range f.Sheets() {
			marker, style := "    ", m.styles.sidebarItem
			if j == view.Sheet {
				marker, style = "  • ", m.styles.sidebarActive
				active = len(lines)
			}
			lines = append(lines, style.Render(fit(marker+s.Name, width)))
		}
	}
	if len(lines) > height {
		start := max(0, active-height+1)
		lines = lines[start:]
	}
	return block(lines, width, height)
}

func (m *Model) renderTableArea(width, height int) string {
	if f, ok := m.ctrl.Mode().(navigator.Finding); ok {
		popup := m.renderFinder(f, width, height)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup)
	}
	if err := m.ctrl.LoadErr(); err != nil {
		msg := lipgloss.NewStyle().Width(width).Render(sanitize(err.Error()))
		lines := append([]string{
			m.styles.err.Render(fit("cannot load "+m.ctrl.ActiveFile().Name, width)),
			"",
		}, strings.Split(msg, "\n")...)
		return block(lines, width, height)
	}
	sheet, ok := m.ctrl.ActiveSheet()
	if !ok || sheet.Width() == 0 {
		return block([]string{m.styles.indicator.Render("no data")}, width, height)
	}
	return block(m.tableLines(sheet, width, height), width, height)
}

func (m *Model) tableLines(sheet dataset.Sheet, width, height int) []string {
	if m.ctrl.Scrollable() && width > navigator.ScrollbarWidth {
		return m.withScrollbar(m.gridLines(sheet, width-navigator.ScrollbarWidth, height), height)
	}
	return m.gridLines(sheet, width, height)
}

// withScrollbar appends the scroll track to the body lines. The header line
// gets a blank cell.
func (m *Model) withScrollbar(lines []string, height int) []string {
	e := m.ctrl.View().Engine
	track := height - 1
	thumb := viewport.ScrollThumb(e.ScrollPosition(), e.RowCount(), track)
	for i := range lines {
		switch {
		case i == 0:
			lines[i] += " "
		case i-1 == thumb:
			lines[i] += m.styles.scrollThumb.Render(scrollThumbGlyph)
		default:
			lines[i] += m.styles.scrollTrack.Render(scrollTrackGlyph)
		}
	}
	return lines
}

func (m *Model) gridLines(sheet dataset.Sheet, width, height int) []string {
	e := m.ctrl.View().Engine
	win := e.Layout(width)
	selRow, hasRow := e.SelectedRow()
	selCol, hasCol := e.SelectedColumn(width)

	lines := []string{m.tableLine(sheet.Headers, win, width, m.styles.header, func(int) lipgloss.Style {
		return m.styles.header
	})}

	start, end := e.RowWindow(height - 1)
	for r := start; r < end; r++ {
		selected := hasRow && r == selRow
		fill := m.styles.row
		if selected {
			fill = m.styles.selectedRow
		}
		lines = append(lines, m.tableLine(sheet.Rows[r], win, width, fill, func(c int) lipgloss.Style {
			switch {
			case hasCol && c == selCol && selected:
				return m.styles.selectedCell
			case hasCol && c == selCol:
				return m.styles.selectedCol
			default:
				return fill
			}
		}))
	}
	return lines
}

// tableLine renders the visible cells of one row between the overflow
// indicators. The last column is truncated when it alone exceeds the width.
func (m *Model) tableLine(cells []string, win viewport.Window, width int, fill lipgloss.Style, cellStyle func(col int) lipgloss.Style) string {
	var b strings.Builder
	remaining := width
	if win.OverflowLeft {
		b.WriteString(m.styles.indicator.Render(fit(overflowLeftGlyph, viewport.IndicatorWidth)))
		remaining -= viewport.IndicatorWidth
	}
	if win.OverflowRight {
		remaining -= viewport.IndicatorWidth
	}
	for j, w := range win.Widths {
		col := win.Offset + j
		cw := min(w, remaining-viewport.CellPadding)
		if cw <= 0 {
			break
		}
		text := ""
		if col < len(cells) {
			text = cells[col]
		}
		b.WriteString(cellStyle(col).Render(fit(text, cw) + strings.Repeat(" ", viewport.CellPadding)))
		remaining -= cw + viewport.CellPadding
	}
	if remaining > 0 {
		b.WriteString(fill.Render(strings.Repeat(" ", remaining)))
	}
	if win.OverflowRight {
		b.WriteString(m.styles.indicator.Render(fit(" "+overflowRightGlyph, viewport.IndicatorWidth)))
	}
	return b.String()
}

func (m *Model) renderFinder(mode navigator.Finding, width, height int) string {
	f := mode.Finder
	inner := min(PopupWidth, width) - 2
	if inner < 4 {
		inner = max(width-2, 1)
	}
	results := f.Results()
	rows := max(min(len(results), height-3), 0)

	lines := []string{m.styles.prompt.Render(fit("> "+f.Query()+"_", inner))}
	if len(results) == 0 {
		lines = append(lines, m.styles.result.Render(fit("no matches", inner)))
	}
	start := max(0, f.Selected()-rows+1)
	for i := start; i < start+rows && i < len(results); i++ {
		style, marker := m.styles.result, "  "
		if i == f.Selected() {
			style, marker = m.styles.resultActive, "▸ "
		}
		label := sanitize(results[i].Label)
		lines = append(lines, m.highlightLabel(label, finder.MatchedIndexes(f.Query(), label), inner, marker, style))
	}
	return m.styles.popup.Render(strings.Join(lines, "\n"))
}

// highlightLabel renders a sanitized label in width cells with the characters
// at the given byte offsets emphasised. The ellipsis of a truncated label is
// never emphasised.
func (m *Model) highlightLabel(label string, offsets []int, width int, marker string, style lipgloss.Style) string {
	room := width - runewidth.StringWidth(marker)
	keep := len(label)
	if runewidth.StringWidth(label) > room {
		label = runewidth.Truncate(label, room, ellipsis)
		keep = len(strings.TrimSuffix(label, ellipsis))
	}
	matched := make(map[int]bool, len(offsets))
	for _, o := range offsets {
		if o < keep {
			matched[o] = true
		}
	}

	var b strings.Builder
	b.WriteString(style.Render(marker))
	used := runewidth.StringWidth(marker)
	matchStyle := m.styles.match.Inherit(style)
	var run strings.Builder
	runMatched := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runMatched {
			b.WriteString(matchStyle.Render(run.String()))
		} else {
			b.WriteString(style.Render(run.String()))
		}
		run.Reset()
	}
	for i, r := range label {
		if matched[i] != runMatched {
			flush()
			runMatched = matched[i]
		}
		run.WriteRune(r)
		used += runewidth.RuneWidth(r)
	}
	flush()
	if used < width {
		b.WriteString(style.Render(strings.Repeat(" ", width-used)))
	}
	return b.String()
}

func (m *Model) renderStatus() string {
	left := m.ctrl.Status()
	if f, ok := m.ctrl.Mode().(navigator.Finding); ok {
		left = fmt.Sprintf("find sheet  %d/%d", len(f.Finder.Results()), len(f.Finder.Candidates()))
	}
	style := m.styles.status
	if m.message != "" {
		left += "  " + m.message
		if m.messageErr {
			style = m.styles.err
		}
	}
	right := fmt.Sprintf("file %d/%d", m.ctrl.View().File+1, len(m.ctrl.Files()))

	gap := m.Width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 1 {
		return style.Render(fit(left, m.Width))
	}
	return style.Render(left + strings.Repeat(" ", gap) + right)
}

func (m *Model) renderFooter() string {
	_, finding := m.ctrl.Mode().(navigator.Finding)
	return lipgloss.NewStyle().MaxWidth(m.Width).Render(m.help.ShortHelpView(m.keys.ShortHelp(finding)))
}
