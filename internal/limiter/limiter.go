// Package limiter picks the sample rows gridfit measures and previews.
package limiter

import (
	"errors"
	"fmt"
)

// Config selects a window of rows. The zero value keeps every row.
type Config struct {
	Limit  int // keep this many rows after Offset (0 = unlimited)
	Offset int // skip the first N rows
	Tail   int // keep only the last N rows; excludes Limit, ignores Offset
}

// Validate reports negative values and conflicting options.
func (c Config) Validate() error {
	var errs []error
	for _, f := range []struct {
		flag  string
		value int
	}{
		{"limit", c.Limit},
		{"offset", c.Offset},
		{"tail", c.Tail},
	} {
		if f.value < 0 {
			errs = append(errs, fmt.Errorf("--%s must be non-negative, got %d", f.flag, f.value))
		}
	}
	if c.Limit > 0 && c.Tail > 0 {
		errs = append(errs, errors.New("--limit and --tail are mutually exclusive"))
	}
	return errors.Join(errs...)
}

// IsActive reports whether any limiting is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// Bounds returns the half-open window [start, end) of a slice of length n.
func (c Config) Bounds(n int) (start, end int) {
	if c.Tail > 0 {
		return max(0, n-c.Tail), n
	}
	start = min(max(0, c.Offset), n)
	end = n
	if c.Limit > 0 {
		end = min(start+c.Limit, n)
	}
	return start, end
}

// Apply returns the selected window of items. It shares the backing array
// with items.
func Apply[T any](c Config, items []T) []T {
	if !c.IsActive() {
		return items
	}
	start, end := c.Bounds(len(items))
	return items[start:end]
}
