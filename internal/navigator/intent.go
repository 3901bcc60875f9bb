package navigator

// Intent is an input action, decoupled from the key that produced it.
type Intent int

const (
	None Intent = iota
	NextRow
	PrevRow
	NextCol
	PrevCol
	NextSheet
	PrevSheet
	NextFile
	PrevFile
	OpenFinder
	ConfirmFinder
	CancelFinder
	FinderNextResult
	FinderPrevResult
	FinderDeleteBackward
	FinderClear
	CopyCell
	Quit
)

var intentNames = map[Intent]string{
	None:                 "none",
	NextRow:              "next-row",
	PrevRow:              "prev-row",
	NextCol:              "next-col",
	PrevCol:              "prev-col",
	NextSheet:            "next-sheet",
	PrevSheet:            "prev-sheet",
	NextFile:             "next-file",
	PrevFile:             "prev-file",
	OpenFinder:           "open-finder",
	ConfirmFinder:        "confirm-finder",
	CancelFinder:         "cancel-finder",
	FinderNextResult:     "finder-next",
	FinderPrevResult:     "finder-prev",
	FinderDeleteBackward: "finder-backspace",
	FinderClear:          "finder-clear",
	CopyCell:             "copy-cell",
	Quit:                 "quit",
}

func (i Intent) String() string {
	if s, ok := intentNames[i]; ok {
		return s
	}
	return "unknown"
}
