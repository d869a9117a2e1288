// Package columns resolves data-grid column widths.
//
// A grid hands the package its column descriptors and the width of the
// container; the distributors return a new slice with every Width resolved.
// Nothing is retained between calls, so recomputing on every resize event is
// always safe.
//
// Two strategies are provided:
//
//   - [AdjustColumnWidths] grows or shrinks auto-resizable columns in
//     proportion to their FlexGrow weight (flex column mode).
//   - [ForceFillColumnWidths] redistributes the space left over after the user
//     resized one column, touching only the columns to its right (force mode).
//
// [Layout] dispatches between them according to a [Mode].
package columns

import "math"

// Pin is the side of the grid a column is pinned to.
type Pin string

const (
	PinLeft   Pin = "left"
	PinCenter Pin = "center"
	PinRight  Pin = "right"
)

// ParsePin accepts "left", "right", "center" and the empty string (center).
func ParsePin(s string) (Pin, bool) {
	switch Pin(s) {
	case "", PinCenter:
		return PinCenter, true
	case PinLeft:
		return PinLeft, true
	case PinRight:
		return PinRight, true
	}
	return "", false
}

// Column describes one grid column.
//
// A zero Width means the width is unset, a zero MaxWidth means the column has
// no upper bound. Use [New] to get Visible and CanAutoResize defaulted to true.
type Column struct {
	Prop          string  `json:"prop,omitempty" yaml:"prop,omitempty" toml:"prop,omitempty"`
	Name          string  `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Width         float64 `json:"width" yaml:"width" toml:"width"`
	MinWidth      float64 `json:"minWidth,omitempty" yaml:"minWidth,omitempty" toml:"minWidth,omitempty"`
	MaxWidth      float64 `json:"maxWidth,omitempty" yaml:"maxWidth,omitempty" toml:"maxWidth,omitempty"`
	FlexGrow      float64 `json:"flexGrow,omitempty" yaml:"flexGrow,omitempty" toml:"flexGrow,omitempty"`
	CanAutoResize bool    `json:"canAutoResize" yaml:"canAutoResize" toml:"canAutoResize"`
	Visible       bool    `json:"visible" yaml:"visible" toml:"visible"`
	Pinned        Pin     `json:"pinned,omitempty" yaml:"pinned,omitempty" toml:"pinned,omitempty"`
}

// Option configures a Column built by New.
type Option func(*Column)

// New returns a visible, auto-resizable column identified by prop.
func New(prop string, opts ...Option) Column {
	c := Column{
		Prop:          prop,
		CanAutoResize: true,
		Visible:       true,
		Pinned:        PinCenter,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithName sets the display name.
func WithName(name string) Option {
	return func(c *Column) { c.Name = name }
}

// WithWidth sets the current width.
func WithWidth(w float64) Option {
	return func(c *Column) { c.Width = w }
}

// WithMinWidth sets the lower bound.
func WithMinWidth(w float64) Option {
	return func(c *Column) { c.MinWidth = w }
}

// WithMaxWidth sets the upper bound; 0 removes it.
func WithMaxWidth(w float64) Option {
	return func(c *Column) { c.MaxWidth = w }
}

// WithFlexGrow sets how much of the free width this column absorbs relative
// to its siblings. Negative factors are treated as 0.
func WithFlexGrow(factor float64) Option {
	return func(c *Column) { c.FlexGrow = math.Max(0, factor) }
}

// WithAutoResize toggles whether distributors may change the width.
func WithAutoResize(enabled bool) Option {
	return func(c *Column) { c.CanAutoResize = enabled }
}

// WithVisible toggles visibility.
func WithVisible(visible bool) Option {
	return func(c *Column) { c.Visible = visible }
}

// WithPin pins the column to a side.
func WithPin(p Pin) Option {
	return func(c *Column) { c.Pinned = p }
}

// Key identifies the column: Prop, or Name when Prop is empty.
func (c Column) Key() string {
	if c.Prop != "" {
		return c.Prop
	}
	return c.Name
}

// HasMax reports whether the column has an upper bound.
func (c Column) HasMax() bool {
	return c.MaxWidth > 0
}

// upperBound is MaxWidth, raised to MinWidth when the two conflict.
func (c Column) upperBound() float64 {
	if !c.HasMax() {
		return math.Inf(1)
	}
	return math.Max(c.MaxWidth, c.lowerBound())
}

func (c Column) lowerBound() float64 {
	return math.Max(0, c.MinWidth)
}

// Clamp bounds w to [MinWidth, MaxWidth]. MinWidth wins over a smaller
// MaxWidth and the result is never negative.
func (c Column) Clamp(w float64) float64 {
	if math.IsNaN(w) {
		w = 0
	}
	return math.Min(math.Max(w, c.lowerBound()), c.upperBound())
}

// eligible reports whether distributors may resize the column.
func (c Column) eligible() bool {
	return c.Visible && c.CanAutoResize
}

func clone(cols []Column) []Column {
	if cols == nil {
		return nil
	}
	out := make([]Column, len(cols))
	copy(out, cols)
	return out
}
