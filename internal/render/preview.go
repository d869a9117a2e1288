package render

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/gridfit/internal/measure"
	"github.com/oakwood-commons/gridfit/pkg/columns"
)

// cellSpan maps resolved widths onto whole terminal cells. Boundaries are
// floored on the running total so rounding never drifts.
type cellSpan struct {
	idx   int
	cells int
}

func spans(cols []columns.Column) []cellSpan {
	var out []cellSpan
	var pos float64
	columns.ByPin(cols).Each(func(idx int) {
		start := math.Floor(pos)
		pos += cols[idx].Width
		if n := int(math.Floor(pos) - start); n > 0 {
			out = append(out, cellSpan{idx: idx, cells: n})
		}
	})
	return out
}

// Preview draws the header and sample rows at the resolved widths, one cell
// per width unit, left pinned columns first and right pinned columns last.
// Each column ends in a divider when it is at least two cells wide.
func Preview(res Result, opts Options) string {
	st := newStyles(opts.NoColor)
	sp := spans(res.resolved)
	if len(sp) == 0 {
		return ""
	}

	line := func(text func(columns.Column) string, style lipgloss.Style) string {
		var b strings.Builder
		for _, s := range sp {
			c := res.resolved[s.idx]
			if s.cells < 2 {
				b.WriteString(style.Render(measure.PadRight(text(c), s.cells)))
				continue
			}
			b.WriteString(style.Render(measure.PadRight(text(c), s.cells-1)))
			b.WriteString(st.separator.Render("│"))
		}
		return b.String()
	}

	var b strings.Builder
	b.WriteString(line(func(c columns.Column) string { return c.Name }, st.header) + "\n")

	rows := opts.Rows
	if opts.PreviewRows > 0 && len(rows) > opts.PreviewRows {
		rows = rows[:opts.PreviewRows]
	}
	for _, row := range rows {
		b.WriteString(line(func(c columns.Column) string { return measure.Cell(row[c.Prop]) }, st.value) + "\n")
	}
	return b.String()
}
