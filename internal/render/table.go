package render

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/gridfit/internal/measure"
)

var (
	headerFG    = lipgloss.Color("12")
	headerBG    = lipgloss.Color("236")
	keyColor    = lipgloss.Color("14")
	valueColor  = lipgloss.Color("248")
	sepColor    = lipgloss.Color("240")
	warnColor   = lipgloss.Color("214")
	tableSep    = "  "
	tableHeader = []string{"#", "COLUMN", "PIN", "MIN", "MAX", "FLEX", "WIDTH"}
)

type styles struct {
	header    lipgloss.Style
	key       lipgloss.Style
	value     lipgloss.Style
	separator lipgloss.Style
	hidden    lipgloss.Style
	warn      lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{header: plain, key: plain, value: plain, separator: plain, hidden: plain, warn: plain}
	}
	return styles{
		header:    lipgloss.NewStyle().Bold(true).Foreground(headerFG).Background(headerBG),
		key:       lipgloss.NewStyle().Foreground(keyColor),
		value:     lipgloss.NewStyle().Foreground(valueColor),
		separator: lipgloss.NewStyle().Foreground(sepColor),
		hidden:    lipgloss.NewStyle().Faint(true),
		warn:      lipgloss.NewStyle().Foreground(warnColor),
	}
}

// Table renders a one-row-per-column summary followed by a totals line.
func Table(res Result, opts Options) string {
	st := newStyles(opts.NoColor)

	rows := make([][]string, 0, len(res.Columns))
	for i, c := range res.Columns {
		maxW := "-"
		if c.MaxWidth > 0 {
			maxW = FormatWidth(c.MaxWidth)
		}
		width := FormatWidth(c.Width)
		if !c.Visible {
			width = "hidden"
		} else if !c.Resize {
			width += " (fixed)"
		}
		name := c.Prop
		if c.Name != "" && c.Name != c.Prop {
			name = fmt.Sprintf("%s (%s)", c.Name, c.Prop)
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			name,
			c.Pinned,
			FormatWidth(c.MinWidth),
			maxW,
			FormatWidth(c.FlexGrow),
			width,
		})
	}

	widths := make([]int, len(tableHeader))
	for i, h := range tableHeader {
		cells := make([]string, 0, len(rows))
		for _, r := range rows {
			cells = append(cells, r[i])
		}
		widths[i] = measure.Natural(h, cells, 0)
	}
	// numeric columns align right
	right := []bool{true, false, false, true, true, true, true}

	var b strings.Builder
	parts := make([]string, len(tableHeader))
	for i, h := range tableHeader {
		parts[i] = st.header.Render(measure.PadRight(h, widths[i]))
	}
	b.WriteString(strings.Join(parts, tableSep) + "\n")

	lineWidth := len(tableSep) * (len(widths) - 1)
	for _, w := range widths {
		lineWidth += w
	}
	b.WriteString(st.separator.Render(strings.Repeat("─", lineWidth)) + "\n")

	for ri, r := range rows {
		style := st.value
		if !res.Columns[ri].Visible {
			style = st.hidden
		}
		for i, cell := range r {
			if right[i] {
				cell = measure.PadLeft(cell, widths[i])
			} else {
				cell = measure.PadRight(cell, widths[i])
			}
			if i == 0 {
				parts[i] = st.key.Render(cell)
			} else {
				parts[i] = style.Render(cell)
			}
		}
		b.WriteString(strings.Join(parts, tableSep) + "\n")
	}

	b.WriteString(st.separator.Render(strings.Repeat("─", lineWidth)) + "\n")
	summary := fmt.Sprintf("%s mode: %s of %s", res.Mode, FormatWidth(res.Total), FormatWidth(res.Width))
	if res.ForceIndex >= 0 && res.Mode == "force" {
		summary += fmt.Sprintf(", resized from column %d", res.ForceIndex)
	}
	if res.Iterations > 0 {
		summary += fmt.Sprintf(", %d passes, %d frozen", res.Iterations, res.Frozen)
	}
	b.WriteString(summary + "\n")
	if res.Residual != 0 {
		b.WriteString(st.warn.Render(fmt.Sprintf("column bounds leave %s unresolved", FormatWidth(res.Residual))) + "\n")
	}
	return b.String()
}
