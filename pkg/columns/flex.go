package columns

import "math"

// epsilon absorbs floating point noise when comparing widths.
const epsilon = 1e-9

// Report describes how a distribution pass went.
type Report struct {
	Mode Mode `json:"mode" yaml:"mode" toml:"mode"`
	// Iterations is the number of distribution passes that ran.
	Iterations int `json:"iterations" yaml:"iterations" toml:"iterations"`
	// Frozen counts the columns that hit a bound and stopped participating.
	Frozen int `json:"frozen" yaml:"frozen" toml:"frozen"`
	// Residual is the target width minus the resolved visible width. It is
	// non-zero only when the bounds made the target unreachable.
	Residual float64 `json:"residual" yaml:"residual" toml:"residual"`
}

// Converged reports whether the resolved columns fill the target exactly.
func (r Report) Converged() bool {
	return r.Residual == 0
}

func residual(expected float64, cols []Column) float64 {
	r := expected - TotalWidth(cols)
	if math.Abs(r) < epsilon {
		return 0
	}
	return r
}

// AdjustColumnWidths distributes expectedWidth over the visible columns
// according to their FlexGrow weights. Columns that cannot auto-resize keep
// their width and still consume space. The input slice is not modified.
//
// When the visible widths already add up to expectedWidth the columns are
// returned as they are, without clamping: a column outside its bounds stays
// there. Callers that need the weights re-applied reset the widths first.
//
// Inspired by fixed-data-table's width helper.
func AdjustColumnWidths(cols []Column, expectedWidth float64) []Column {
	out, _ := AdjustColumnWidthsWithReport(cols, expectedWidth)
	return out
}

// AdjustColumnWidthsWithReport is AdjustColumnWidths that also reports the
// passes it needed and any width it could not place.
func AdjustColumnWidthsWithReport(cols []Column, expectedWidth float64) ([]Column, Report) {
	report := Report{Mode: ModeFlex}
	if TotalWidth(cols) == expectedWidth {
		return clone(cols), report
	}
	expected := math.Max(0, expectedWidth)

	out := clone(cols)
	for i := range out {
		if out[i].eligible() {
			out[i].Width = 0
		}
	}

	report.Iterations, report.Frozen = scaleColumns(out, ByPin(out), expected, TotalFlexGrow(cols))
	report.Residual = residual(expected, out)
	return out, report
}

// scaleColumns grows the auto-resizable columns in groups by their flex grow
// share of maxWidth, respecting manually set widths. Columns that hit a bound
// are frozen there and whatever they could not take is handed to the rest on
// the next pass.
func scaleColumns(cols []Column, groups PinGroups, maxWidth, totalFlexGrow float64) (iterations, frozen int) {
	groups.Each(func(idx int) {
		if c := cols[idx]; !c.CanAutoResize {
			maxWidth -= c.Width
			totalFlexGrow -= math.Max(0, c.FlexGrow)
		}
	})

	settled := make(map[int]bool, groups.Len())
	remaining := maxWidth

	for remaining != 0 {
		if totalFlexGrow <= epsilon {
			// nothing left that can grow; the remainder stays unresolved
			break
		}
		iterations++
		widthPerFlexPoint := remaining / totalFlexGrow
		remaining = 0
		newlySettled := 0

		groups.Each(func(idx int) {
			c := &cols[idx]
			if !c.CanAutoResize || settled[idx] {
				return
			}
			grow := math.Max(0, c.FlexGrow)
			w := c.Width + grow*widthPerFlexPoint
			bounded := c.Clamp(w)
			if bounded != w {
				remaining += w - bounded
				c.Width = bounded
				settled[idx] = true
				totalFlexGrow -= grow
				newlySettled++
				return
			}
			c.Width = w
		})

		if newlySettled == 0 {
			break
		}
	}

	// columns the loop never reached still have to sit inside their bounds
	groups.Each(func(idx int) {
		c := &cols[idx]
		if c.CanAutoResize && !settled[idx] {
			c.Width = c.Clamp(c.Width)
		}
	})
	return iterations, len(settled)
}
