// Package viewport tracks which part of a sheet is on screen: column widths,
// the horizontal column window, the vertical row window and the row/column
// cursor.
//
// Only selections and offsets are stored. The visible column count and the
// overflow flags depend on the available width and are recomputed by Layout
// on every call, so a terminal resize can never leave a stale window behind.
package viewport

import (
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/tabv/pkg/loader"
)

const (
	// IndicatorWidth is the number of cells reserved for each overflow
	// indicator that is shown.
	IndicatorWidth = 2
	// CellPadding is added to every column width when fitting columns.
	CellPadding = 1
)

// DisplayWidth returns the number of terminal cells s occupies.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// ColumnWidths returns, per column, the widest display width among the header
// and all cells of that column.
func ColumnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = DisplayWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := DisplayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// Window is the horizontal layout for one frame.
type Window struct {
	// Offset is the index of the leftmost visible column.
	Offset int
	// Visible is the number of columns that fit.
	Visible int
	// Widths holds the content width of each visible column.
	Widths []int
	// Total is the number of columns in the sheet.
	Total         int
	OverflowLeft  bool
	OverflowRight bool
}

// End returns the index one past the last visible column.
func (w Window) End() int { return w.Offset + w.Visible }

// Engine holds the viewport state of the active sheet.
type Engine struct {
	widths []int
	nRows  int

	row       int // -1 when unset
	col       int // index within the visible window, -1 when unset
	colOffset int
	rowOffset int
	scroll    int
}

// New returns an engine with no sheet.
func New() *Engine {
	return &Engine{row: -1, col: -1}
}

// UpdateShape activates sheet: widths are recomputed and every offset and
// selection is cleared.
func (e *Engine) UpdateShape(sheet loader.Sheet) {
	e.widths = ColumnWidths(sheet.Headers, sheet.Rows)
	e.nRows = len(sheet.Rows)
	e.Reset()
}

// Reset clears selections and offsets but keeps the sheet shape.
func (e *Engine) Reset() {
	e.row = -1
	e.col = -1
	e.colOffset = 0
	e.rowOffset = 0
	e.scroll = 0
}

// ColumnWidths returns a copy of the active sheet's column widths.
func (e *Engine) ColumnWidths() []int {
	return append([]int(nil), e.widths...)
}

// RowCount returns the number of data rows.
func (e *Engine) RowCount() int { return e.nRows }

// ColumnCount returns the number of columns.
func (e *Engine) ColumnCount() int { return len(e.widths) }

// ColOffset returns the leftmost visible column index.
func (e *Engine) ColOffset() int { return e.colOffset }

// ScrollPosition returns the vertical scroll indicator position.
func (e *Engine) ScrollPosition() int { return e.scroll }

// ScrollThumb maps a scroll position among n rows onto a track of the given
// number of lines and returns the line holding the thumb.
func ScrollThumb(pos, n, track int) int {
	if track <= 1 || n <= 1 {
		return 0
	}
	pos = max(0, min(pos, n-1))
	return pos * (track - 1) / (n - 1)
}

// SelectedRow returns the selected row, if any.
func (e *Engine) SelectedRow() (int, bool) {
	if e.row < 0 || e.nRows == 0 {
		return 0, false
	}
	return e.row, true
}

// SelectedColumn returns the absolute index of the selected column for a
// frame of the given width, if any.
func (e *Engine) SelectedColumn(width int) (int, bool) {
	if e.col < 0 {
		return 0, false
	}
	w := e.Layout(width)
	if w.Visible == 0 {
		return 0, false
	}
	return w.Offset + min(e.col, w.Visible-1), true
}

// Layout fits columns starting at the column offset into width cells.
// Each column takes its width plus CellPadding; each overflow direction that
// is true takes IndicatorWidth. While columns remain right of the offset at
// least one is visible, even when it has to be truncated.
func (e *Engine) Layout(width int) Window {
	return e.layoutAt(e.colOffset, width)
}

func (e *Engine) layoutAt(offset, width int) Window {
	total := len(e.widths)
	offset = max(0, min(offset, total))
	w := Window{Offset: offset, Total: total, OverflowLeft: offset > 0}

	avail := width
	if w.OverflowLeft {
		avail -= IndicatorWidth
	}
	n := e.fit(offset, avail)
	if offset+n < total {
		w.OverflowRight = true
		n = e.fit(offset, avail-IndicatorWidth)
	}
	if n == 0 && offset < total {
		n = 1
	}
	w.OverflowRight = offset+n < total
	w.Visible = n
	w.Widths = append([]int(nil), e.widths[offset:offset+n]...)
	return w
}

func (e *Engine) fit(offset, avail int) int {
	used, n := 0, 0
	for i := offset; i < len(e.widths); i++ {
		need := e.widths[i] + CellPadding
		if used+need > avail {
			break
		}
		used += need
		n++
	}
	return n
}

// SelectNextRow moves the row cursor down, wrapping to the first row.
func (e *Engine) SelectNextRow() {
	if e.nRows == 0 {
		return
	}
	switch {
	case e.row < 0, e.row >= e.nRows-1:
		e.row = 0
	default:
		e.row++
	}
	e.scroll = e.row
}

// SelectPreviousRow moves the row cursor up, wrapping to the last row.
func (e *Engine) SelectPreviousRow() {
	if e.nRows == 0 {
		return
	}
	switch {
	case e.row < 0:
		e.row = 0
	case e.row == 0:
		e.row = e.nRows - 1
	default:
		e.row--
	}
	e.scroll = e.row
}

// SelectNextColumn moves the column cursor right within the window. At the
// right edge it scrolls the window when columns are hidden to the right,
// keeping the cursor on the edge, and otherwise wraps to the window's first
// column.
func (e *Engine) SelectNextColumn(width int) {
	w := e.Layout(width)
	if w.Visible == 0 {
		return
	}
	e.colOffset = w.Offset
	if e.col < 0 {
		e.col = 0
		return
	}
	cur := min(e.col, w.Visible-1)
	switch {
	case cur < w.Visible-1:
		e.col = cur + 1
	case w.OverflowRight:
		// Scroll one column at a time until the next column is on screen;
		// the window can narrow once the left indicator appears.
		target := w.Offset + cur + 1
		off := w.Offset + 1
		for off < target && target >= e.layoutAt(off, width).End() {
			off++
		}
		e.colOffset = off
		e.col = target - off
	default:
		e.col = 0
	}
}

// SelectPreviousColumn moves the column cursor left within the window. At
// the left edge it scrolls the window back one column when columns are hidden
// to the left, and otherwise wraps to the window's last column.
func (e *Engine) SelectPreviousColumn(width int) {
	w := e.Layout(width)
	if w.Visible == 0 {
		return
	}
	e.colOffset = w.Offset
	if e.col < 0 {
		e.col = 0
		return
	}
	cur := min(e.col, w.Visible-1)
	switch {
	case cur > 0:
		e.col = cur - 1
	case w.OverflowLeft:
		e.colOffset = w.Offset - 1
		e.col = 0
	default:
		e.col = w.Visible - 1
	}
}

// RowWindow returns the [start, end) range of rows shown in height lines,
// scrolled minimally from the stored offset so the selected row is inside.
func (e *Engine) RowWindow(height int) (int, int) {
	if height <= 0 || e.nRows == 0 {
		return 0, 0
	}
	start := min(e.rowOffset, max(0, e.nRows-1))
	if e.row >= 0 {
		if e.row < start {
			start = e.row
		}
		if e.row >= start+height {
			start = e.row - height + 1
		}
	}
	return start, min(start+height, e.nRows)
}

// KeepRowVisible stores the row offset computed by RowWindow.
func (e *Engine) KeepRowVisible(height int) {
	e.rowOffset, _ = e.RowWindow(height)
}
