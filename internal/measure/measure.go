// Package measure sizes cell text in terminal cells.
package measure

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/gridfit/pkg/columns"
)

const ellipsis = "..."

// StringWidth is the display width of s.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most width cells, ending in an ellipsis when
// there is room for one.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= len(ellipsis) {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// PadRight truncates s to width and fills the rest with spaces.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// PadLeft truncates s to width and right-aligns it.
func PadLeft(s string, width int) string {
	s = Truncate(s, width)
	if w := runewidth.StringWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

// Cell renders a record value as single-line text.
func Cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.ReplaceAll(x, "\n", " ")
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool, int, int64, uint64:
		return fmt.Sprint(x)
	case map[string]any, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
	return fmt.Sprint(v)
}

// Natural is the width that fits the header and every cell plus padding.
func Natural(header string, cells []string, padding int) int {
	w := runewidth.StringWidth(header)
	for _, c := range cells {
		if cw := runewidth.StringWidth(c); cw > w {
			w = cw
		}
	}
	return w + max(0, padding)
}

// FillUnset returns a copy of cols where visible columns without a width get
// the natural width of their header and values in rows, within their bounds.
func FillUnset(cols []columns.Column, rows []map[string]any, padding int) []columns.Column {
	out := make([]columns.Column, len(cols))
	copy(out, cols)
	for i := range out {
		c := &out[i]
		if !c.Visible || c.Width > 0 {
			continue
		}
		cells := make([]string, 0, len(rows))
		for _, row := range rows {
			cells = append(cells, Cell(row[c.Prop]))
		}
		c.Width = c.Clamp(float64(Natural(c.Name, cells, padding)))
	}
	return out
}
