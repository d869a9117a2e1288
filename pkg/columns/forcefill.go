package columns

import "math"

// DefaultColumnWidth is the width force-fill assumes for a column whose width
// is unset.
const DefaultColumnWidth = 300

// remainingWidthLimit is the leftover below which force-fill stops iterating.
const remainingWidthLimit = 1

type fillOptions struct {
	allowBleed      bool
	defaultColWidth float64
}

// FillOption configures ForceFillColumnWidths.
type FillOption func(*fillOptions)

// WithAllowBleed lets the columns overflow the target instead of shrinking
// when their combined width already exceeds it.
func WithAllowBleed(allow bool) FillOption {
	return func(o *fillOptions) { o.allowBleed = allow }
}

// WithDefaultColumnWidth sets the width used for columns with no width.
// Non-positive values are ignored.
func WithDefaultColumnWidth(w float64) FillOption {
	return func(o *fillOptions) {
		if w > 0 {
			o.defaultColWidth = w
		}
	}
}

// ForceFillColumnWidths makes the visible columns fill expectedWidth after
// the column at startIdx was resized by the user.
//
// Rules:
//
//   - Only visible, auto-resizable columns right of startIdx absorb the
//     difference; the rest keep their width.
//   - The difference is split in proportion to each column's width before the
//     call, so wide columns take a larger share.
//   - Widths never leave [MinWidth, MaxWidth]; a column that reaches a bound is
//     frozen there and the others take over.
//   - If the columns to the right cannot absorb everything, the resized column
//     takes the rest, within its own bounds.
//
// A startIdx of -1 means no column was resized and every eligible column
// takes part. An expectedWidth of 0 returns the columns unchanged.
func ForceFillColumnWidths(cols []Column, expectedWidth float64, startIdx int, opts ...FillOption) []Column {
	out, _ := ForceFillWithReport(cols, expectedWidth, startIdx, opts...)
	return out
}

// ForceFillWithReport is ForceFillColumnWidths that also reports the passes
// it needed and any width it could not place.
func ForceFillWithReport(cols []Column, expectedWidth float64, startIdx int, opts ...FillOption) ([]Column, Report) {
	o := fillOptions{defaultColWidth: DefaultColumnWidth}
	for _, opt := range opts {
		opt(&o)
	}
	report := Report{Mode: ModeForce}

	if expectedWidth == 0 {
		return clone(cols), report
	}
	expected := math.Max(0, expectedWidth)

	var resizable []int
	for i := max(startIdx+1, 0); i < len(cols); i++ {
		if cols[i].eligible() {
			resizable = append(resizable, i)
		}
	}

	out := make([]Column, len(cols))
	for i, c := range cols {
		if c.Visible {
			if c.Width == 0 {
				c.Width = o.defaultColWidth
			}
			c.Width = c.Clamp(c.Width)
		}
		out[i] = c
	}

	remaining := expected - TotalWidth(out)
	if nearZero(remaining) || len(resizable) == 0 {
		report.Residual = residual(expected, out)
		return out, report
	}
	if o.allowBleed && remaining < 0 {
		// content is already wider than the target; keep original widths
		report.Residual = residual(expected, out)
		return out, report
	}

	candidates := append([]int(nil), resizable...)
	originalWidths := make(map[int]float64, len(resizable))
	for _, i := range resizable {
		originalWidths[i] = out[i].Width
	}

	for math.Abs(remaining) > remainingWidthLimit && len(resizable) > 0 {
		report.Iterations++
		growing := remaining > 0

		totalOriginal := 0.0
		for _, i := range resizable {
			totalOriginal += originalWidths[i]
		}
		for _, i := range resizable {
			share := 1 / float64(len(resizable))
			if totalOriginal > epsilon {
				share = originalWidths[i] / totalOriginal
			}
			out[i].Width += remaining * share
		}

		kept := make([]int, 0, len(resizable))
		for _, i := range resizable {
			c := &out[i]
			switch {
			case growing && c.HasMax() && c.Width >= c.upperBound():
				c.Width = c.upperBound()
			case !growing && c.Width <= c.lowerBound():
				c.Width = c.lowerBound()
			default:
				kept = append(kept, i)
				continue
			}
			report.Frozen++
		}
		progressed := len(kept) < len(resizable)
		resizable = kept
		remaining = expected - TotalWidth(out)
		if !progressed {
			break
		}
	}

	// sub-unit leftovers, and whatever frozen neighbours could not take, go
	// to the rightmost column that still has room
	for k := len(candidates) - 1; k >= 0 && !nearZero(remaining); k-- {
		remaining = absorb(out, candidates[k], expected)
	}
	if !nearZero(remaining) && startIdx >= 0 && startIdx < len(out) && out[startIdx].Visible {
		absorb(out, startIdx, expected)
	}

	report.Residual = residual(expected, out)
	return out, report
}

// absorb adds whatever is missing from expected to the column at idx, within
// its bounds, and returns what is still missing.
func absorb(cols []Column, idx int, expected float64) float64 {
	remaining := expected - TotalWidth(cols)
	cols[idx].Width = cols[idx].Clamp(cols[idx].Width + remaining)
	return expected - TotalWidth(cols)
}

func nearZero(v float64) bool {
	return math.Abs(v) < epsilon
}
