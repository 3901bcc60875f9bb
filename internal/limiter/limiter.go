// Package limiter trims the rows of loaded sheets to a window chosen on the
// command line.
package limiter

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/tabv/pkg/loader"
)

// Config holds the row-limiting parameters.
type Config struct {
	Limit  int // Keep only this many rows (0 = unlimited)
	Offset int // Skip the first N rows (0 = no skip)
	Tail   int // Keep only the last N rows (0 = disabled); mutually exclusive with Limit
}

// Validate checks for conflicting flag combinations and returns an error if invalid.
// Rules:
// - Limit and Tail are mutually exclusive
// - If Tail is set, Offset is ignored
// - All numeric values must be non-negative
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("--tail must be non-negative, got %d", c.Tail)
	}
	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("--limit and --tail are mutually exclusive")
	}
	return nil
}

// IsActive returns true if any limiting is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// Window returns the [start, end) row range kept out of n rows.
func (c Config) Window(n int) (int, int) {
	if c.Tail > 0 {
		return max(n-c.Tail, 0), n
	}
	start := min(c.Offset, n)
	end := n
	if c.Limit > 0 {
		end = min(start+c.Limit, n)
	}
	return start, end
}

// Apply returns sheet with only the rows inside the window. Headers are kept.
func (c Config) Apply(sheet loader.Sheet) loader.Sheet {
	if !c.IsActive() {
		return sheet
	}
	start, end := c.Window(len(sheet.Rows))
	sheet.Rows = sheet.Rows[start:end:end]
	return sheet
}

// Loader wraps next so every loaded sheet is limited by c.
func Loader(next loader.Loader, c Config, log logr.Logger) loader.Loader {
	if !c.IsActive() {
		return next
	}
	return loader.Func(func(path string) ([]loader.Sheet, error) {
		sheets, err := next.Load(path)
		if err != nil {
			return nil, err
		}
		for i, sheet := range sheets {
			sheets[i] = c.Apply(sheet)
			log.V(1).Info("limited sheet", "path", path, "sheet", sheet.Name,
				"kept", len(sheets[i].Rows), "total", len(sheet.Rows))
		}
		return sheets, nil
	})
}
