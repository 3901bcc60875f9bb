// Package navigator owns the view state of a session: which file and sheet
// are active, the viewport over that sheet, and whether input goes to the
// table or to the sheet finder.
package navigator

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/tabv/internal/dataset"
	"github.com/oakwood-commons/tabv/internal/finder"
	"github.com/oakwood-commons/tabv/internal/viewport"
	"github.com/oakwood-commons/tabv/pkg/discovery"
	"github.com/oakwood-commons/tabv/pkg/loader"
)

// Mode is the navigation state, either Browsing or Finding.
type Mode interface {
	isMode()
}

// Browsing routes intents to the active file view.
type Browsing struct{}

// Finding routes intents to the finder it owns. The finder lives exactly as
// long as the mode.
type Finding struct {
	Finder *finder.Finder
}

func (Browsing) isMode() {}
func (Finding) isMode()  {}

// FileView is the active file, its selected sheet and the viewport over it.
type FileView struct {
	File   int
	Sheet  int
	Engine *viewport.Engine
}

// Effect is what the caller has to do after an intent was applied.
type Effect struct {
	Quit bool
	// Copy holds text to place on the clipboard.
	Copy string
}

// Controller routes intents by mode. It is not safe for concurrent use.
type Controller struct {
	files  []*dataset.File
	loader loader.Loader
	log    logr.Logger

	mode Mode
	view FileView

	width  int
	height int
}

// New starts a session on the first file. An empty file list is rejected
// with discovery.ErrNoFiles. A first file that fails to load is not an error:
// the failure is shown in place of the table.
func New(files []*dataset.File, l loader.Loader, log logr.Logger) (*Controller, error) {
	if len(files) == 0 {
		return nil, discovery.ErrNoFiles
	}
	if l == nil {
		l = loader.FileLoader{}
	}
	c := &Controller{files: files, loader: l, log: log, mode: Browsing{}}
	c.activate(finder.Address{})
	return c, nil
}

// Files returns the session files in discovery order.
func (c *Controller) Files() []*dataset.File { return c.files }

// Mode returns the current mode.
func (c *Controller) Mode() Mode { return c.mode }

// View returns the active file view.
func (c *Controller) View() FileView { return c.view }

// ActiveFile returns the file being viewed.
func (c *Controller) ActiveFile() *dataset.File { return c.files[c.view.File] }

// ActiveSheet returns the sheet being viewed, false when the file did not load.
func (c *Controller) ActiveSheet() (dataset.Sheet, bool) {
	return c.ActiveFile().Sheet(c.view.Sheet)
}

// LoadErr returns the load error of the active file, if any.
func (c *Controller) LoadErr() error {
	f := c.ActiveFile()
	if f.State() == dataset.Failed {
		return f.Err()
	}
	return nil
}

// Size returns the table area last given to Resize.
func (c *Controller) Size() (width, height int) { return c.width, c.height }

// ScrollbarWidth is the number of cells taken by the vertical scroll
// indicator when the active sheet has more rows than fit.
const ScrollbarWidth = 1

// Scrollable reports whether the active sheet has more rows than the table
// area shows.
func (c *Controller) Scrollable() bool {
	return c.view.Engine.RowCount() > c.height
}

// ColumnWidth returns the cells available to columns, which excludes the
// scroll indicator when one is shown.
func (c *Controller) ColumnWidth() int {
	if c.Scrollable() {
		return max(c.width-ScrollbarWidth, 0)
	}
	return c.width
}

// Resize records the table area in cells: width for column paging, height in
// body rows for vertical scrolling.
func (c *Controller) Resize(width, height int) {
	c.width = max(width, 0)
	c.height = max(height, 0)
	c.view.Engine.KeepRowVisible(c.height)
}

// Type appends text to the finder query. It does nothing while browsing.
func (c *Controller) Type(text string) {
	if m, ok := c.mode.(Finding); ok {
		m.Finder.Insert(text)
	}
}

// Apply performs intent in the current mode. Intents that do not belong to
// the mode are ignored, except Quit which is honoured everywhere.
func (c *Controller) Apply(intent Intent) Effect {
	if intent == Quit {
		return Effect{Quit: true}
	}
	switch m := c.mode.(type) {
	case Finding:
		c.applyFinding(m.Finder, intent)
	default:
		return c.applyBrowsing(intent)
	}
	return Effect{}
}

func (c *Controller) applyBrowsing(intent Intent) Effect {
	e := c.view.Engine
	switch intent {
	case NextRow:
		e.SelectNextRow()
		e.KeepRowVisible(c.height)
	case PrevRow:
		e.SelectPreviousRow()
		e.KeepRowVisible(c.height)
	case NextCol:
		e.SelectNextColumn(c.ColumnWidth())
	case PrevCol:
		e.SelectPreviousColumn(c.ColumnWidth())
	case NextSheet:
		c.stepSheet(1)
	case PrevSheet:
		c.stepSheet(-1)
	case NextFile:
		c.stepFile(1)
	case PrevFile:
		c.stepFile(-1)
	case OpenFinder:
		c.mode = Finding{Finder: finder.New(finder.BuildCandidates(c.files))}
		c.log.V(1).Info("finder opened", "candidates", len(c.mode.(Finding).Finder.Candidates()))
	case CopyCell:
		if text, ok := c.selectedCell(); ok {
			return Effect{Copy: text}
		}
	}
	return Effect{}
}

func (c *Controller) applyFinding(f *finder.Finder, intent Intent) {
	switch intent {
	case FinderNextResult:
		f.SelectNextResult()
	case FinderPrevResult:
		f.SelectPreviousResult()
	case FinderDeleteBackward:
		f.DeleteBackward()
	case FinderClear:
		f.Clear()
	case CancelFinder:
		c.mode = Browsing{}
	case ConfirmFinder:
		addr, ok := f.Resolve()
		c.mode = Browsing{}
		if ok {
			c.log.V(1).Info("finder confirmed", "query", f.Query(), "file", addr.File, "sheet", addr.Sheet)
			c.activate(addr)
		}
	}
}

func (c *Controller) stepFile(delta int) {
	n := len(c.files)
	if n < 2 {
		return
	}
	c.activate(finder.Address{File: (c.view.File + delta + n) % n})
}

func (c *Controller) stepSheet(delta int) {
	n := c.ActiveFile().SheetCount()
	if n < 2 {
		return
	}
	c.activate(finder.Address{File: c.view.File, Sheet: (c.view.Sheet + delta + n) % n})
}

// activate switches to addr, loading the file first. The viewport always
// starts fresh: offset zero and nothing selected.
func (c *Controller) activate(addr finder.Address) {
	f := c.files[addr.File]
	if err := f.EnsureLoaded(c.loader); err != nil {
		c.log.Error(err, "file failed to load", "path", f.Path)
	}

	sheet, ok := f.Sheet(addr.Sheet)
	if !ok {
		addr.Sheet = 0
		sheet, _ = f.Sheet(0)
	}
	engine := viewport.New()
	engine.UpdateShape(sheet)

	c.view = FileView{File: addr.File, Sheet: addr.Sheet, Engine: engine}
	c.log.V(1).Info("sheet activated", "file", f.Name, "sheet", sheet.Name,
		"rows", engine.RowCount(), "columns", engine.ColumnCount())
}

func (c *Controller) selectedCell() (string, bool) {
	sheet, ok := c.ActiveSheet()
	if !ok {
		return "", false
	}
	row, ok := c.view.Engine.SelectedRow()
	if !ok {
		return "", false
	}
	col, ok := c.view.Engine.SelectedColumn(c.ColumnWidth())
	if !ok || col >= len(sheet.Rows[row]) {
		return "", false
	}
	return sheet.Rows[row][col], true
}

// Status describes the active position, e.g. "people  row 3/10  col name".
func (c *Controller) Status() string {
	f := c.ActiveFile()
	label := f.Name
	if sheet, ok := c.ActiveSheet(); ok && sheet.Name != "" {
		label += "/" + sheet.Name
	}
	e := c.view.Engine
	status := label
	if row, ok := e.SelectedRow(); ok {
		status += fmt.Sprintf("  row %d/%d", row+1, e.RowCount())
	} else if e.RowCount() > 0 {
		status += fmt.Sprintf("  rows %d", e.RowCount())
	}
	if col, ok := e.SelectedColumn(c.ColumnWidth()); ok {
		if sheet, ok := c.ActiveSheet(); ok {
			status += "  col " + sheet.Headers[col]
		}
	}
	return status
}
