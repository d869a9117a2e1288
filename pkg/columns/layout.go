package columns

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects how a grid distributes width among its columns.
type Mode string

const (
	// ModeStandard keeps the configured widths.
	ModeStandard Mode = "standard"
	// ModeFlex distributes the container width by flex grow weight.
	ModeFlex Mode = "flex"
	// ModeForce fills the container, growing or shrinking the columns right
	// of the last resized one.
	ModeForce Mode = "force"
)

// Modes lists the supported modes in display order.
func Modes() []Mode {
	return []Mode{ModeStandard, ModeFlex, ModeForce}
}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeStandard, ModeFlex, ModeForce:
		return m, nil
	case "":
		return ModeStandard, nil
	}
	return "", fmt.Errorf("invalid column mode %q (expected standard, flex or force)", s)
}

// Next returns the mode after m in Modes, wrapping around.
func (m Mode) Next() Mode {
	modes := Modes()
	for i, candidate := range modes {
		if candidate == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return ModeStandard
}

func (m Mode) String() string {
	return string(m)
}

// Layout is the width budget of a grid and the rules for spending it.
type Layout struct {
	Mode  Mode
	Width float64
	// ScrollbarWidth is taken off Width before distributing.
	ScrollbarWidth float64
	// DefaultColumnWidth is used by force mode for unset widths.
	DefaultColumnWidth float64
	// AllowBleed lets force mode overflow instead of shrinking.
	AllowBleed bool
}

// InnerWidth is the width available to the columns.
func (l Layout) InnerWidth() float64 {
	return math.Max(0, l.Width-math.Max(0, l.ScrollbarWidth))
}

// Apply resolves the column widths for the layout's mode. forceIdx is the
// index of the column the user just resized, or -1.
func (l Layout) Apply(cols []Column, forceIdx int) ([]Column, Report) {
	width := l.InnerWidth()
	switch l.Mode {
	case ModeForce:
		return ForceFillWithReport(cols, width, forceIdx,
			WithAllowBleed(l.AllowBleed),
			WithDefaultColumnWidth(l.DefaultColumnWidth),
		)
	case ModeFlex:
		return AdjustColumnWidthsWithReport(cols, width)
	default:
		out := clone(cols)
		return out, Report{Mode: ModeStandard, Residual: residual(width, out)}
	}
}

// ResizeColumn returns a copy of cols with the column at idx set to width,
// kept inside its bounds. Out of range indexes return an unchanged copy.
func ResizeColumn(cols []Column, idx int, width float64) []Column {
	out := clone(cols)
	if idx < 0 || idx >= len(out) {
		return out
	}
	out[idx].Width = out[idx].Clamp(width)
	return out
}

// MoveColumn returns a copy of cols with the column at from moved to to.
// Indexes are clamped to the slice.
func MoveColumn(cols []Column, from, to int) []Column {
	out := clone(cols)
	if len(out) == 0 || from < 0 || from >= len(out) {
		return out
	}
	to = min(max(to, 0), len(out)-1)
	if from == to {
		return out
	}
	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out
}
