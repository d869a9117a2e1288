// Package table is the column summary shown by the editor: a bubbles table
// whose own columns are sized with the flex distributor.
package table

import (
	"fmt"
	"image/color"
	"math"

	bubtable "charm.land/bubbles/v2/table"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/gridfit/pkg/columns"
)

// Row is one line of cells.
type Row = bubtable.Row

// Column describes a summary column. Width is the natural width; columns with
// a FlexGrow share whatever the terminal has left, up to MaxWidth.
type Column struct {
	Title    string
	Width    int
	MaxWidth int
	FlexGrow float64
}

// cellPadding is the right padding of every cell.
const cellPadding = 1

// Model is a table of typed values. The cursor is driven by the caller, so
// key handling stays with the owning model.
type Model[V any] struct {
	table   bubtable.Model
	styles  bubtable.Styles
	columns []Column
	rows    []V
	toRow   func(V) Row

	width   int
	height  int
	noColor bool

	headerFG   color.Color
	selectedFG color.Color
	selectedBG color.Color
}

// NewModel creates a table with the given columns. toRow turns a value into
// its cells.
func NewModel[V any](cols []Column, toRow func(V) Row) *Model[V] {
	m := &Model[V]{
		columns: cols,
		toRow:   toRow,
		height:  5,
	}
	m.table = bubtable.New(
		bubtable.WithColumns(m.fit(0)),
		bubtable.WithFocused(true),
	)

	s := bubtable.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Bold(true).
		Padding(0, cellPadding, 0, 0)
	s.Selected = s.Selected.Padding(0)
	s.Cell = lipgloss.NewStyle().Padding(0, cellPadding, 0, 0)
	m.styles = s
	m.table.SetStyles(s)
	m.applyHeight()
	return m
}

// applyHeight sizes the bubbles table, whose height includes the header, so
// that m.height body rows are shown.
func (m *Model[V]) applyHeight() {
	m.table.SetHeight(m.height + lipgloss.Height(m.styles.Header.Render(" ")))
}

// fit resolves the column widths for a table width. A width of 0 keeps the
// natural widths.
func (m *Model[V]) fit(width int) []bubtable.Column {
	out := make([]bubtable.Column, len(m.columns))
	if width <= 0 {
		for i, c := range m.columns {
			out[i] = bubtable.Column{Title: c.Title, Width: c.Width}
		}
		return out
	}

	cols := make([]columns.Column, len(m.columns))
	for i, c := range m.columns {
		if c.FlexGrow <= 0 {
			cols[i] = columns.New(c.Title, columns.WithWidth(float64(c.Width)), columns.WithAutoResize(false))
			continue
		}
		cols[i] = columns.New(c.Title,
			columns.WithWidth(float64(c.Width)),
			columns.WithMinWidth(float64(c.Width)),
			columns.WithMaxWidth(float64(c.MaxWidth)),
			columns.WithFlexGrow(c.FlexGrow),
		)
	}
	avail := float64(width - cellPadding*len(cols))
	for i, c := range columns.AdjustColumnWidths(cols, avail) {
		out[i] = bubtable.Column{Title: m.columns[i].Title, Width: int(math.Floor(c.Width))}
	}
	return out
}

// Widths returns the rendered width of each column, padding excluded.
func (m *Model[V]) Widths() []int {
	cols := m.table.Columns()
	out := make([]int, len(cols))
	for i, c := range cols {
		out[i] = c.Width
	}
	return out
}

// SetRows replaces the values. The cursor stays in range.
func (m *Model[V]) SetRows(rows []V) {
	m.rows = rows
	tableRows := make([]Row, len(rows))
	for i, row := range rows {
		tableRows[i] = m.toRow(row)
	}
	m.table.SetRows(tableRows)
	if n := len(rows); n > 0 && m.Cursor() >= n {
		m.SetCursor(n - 1)
	}
}

// Rows returns the current values.
func (m *Model[V]) Rows() []V {
	return m.rows
}

// Cursor returns the selected row index.
func (m *Model[V]) Cursor() int {
	return m.table.Cursor()
}

// SetCursor selects a row.
func (m *Model[V]) SetCursor(pos int) {
	m.table.SetCursor(pos)
}

// SelectedRow returns the selected value, or nil when empty.
func (m *Model[V]) SelectedRow() *V {
	cursor := m.Cursor()
	if cursor < 0 || cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[cursor]
}

// SetSize refits the columns to width and shows height body rows.
func (m *Model[V]) SetSize(width, height int) {
	height = max(1, height)
	if width != m.width {
		m.width = width
		m.table.SetColumns(m.fit(width))
	}
	if height != m.height {
		m.height = height
		m.applyHeight()
	}
}

// SetNoColor enables or disables color output.
func (m *Model[V]) SetNoColor(noColor bool) {
	m.noColor = noColor
	m.applyColorScheme()
}

// SetColors sets the header and selection colors. nil keeps the default.
func (m *Model[V]) SetColors(headerFG, selectedFG, selectedBG color.Color) {
	m.headerFG, m.selectedFG, m.selectedBG = headerFG, selectedFG, selectedBG
	m.applyColorScheme()
}

func (m *Model[V]) applyColorScheme() {
	s := m.styles
	if m.noColor {
		s.Header = s.Header.UnsetForeground().UnsetBackground()
		s.Selected = s.Selected.UnsetForeground().UnsetBackground().Reverse(true)
		s.Cell = s.Cell.UnsetForeground().UnsetBackground()
	} else {
		if m.headerFG != nil {
			s.Header = s.Header.Foreground(m.headerFG)
		}
		if m.selectedFG != nil {
			s.Selected = s.Selected.Foreground(m.selectedFG)
		}
		if m.selectedBG != nil {
			s.Selected = s.Selected.Background(m.selectedBG)
		}
	}
	m.styles = s
	m.table.SetStyles(s)
}

// View renders the table.
func (m *Model[V]) View() string {
	return m.table.View()
}

// Height returns the rendered height including the header.
func (m *Model[V]) Height() int {
	return lipgloss.Height(m.View())
}

func (m *Model[V]) String() string {
	return fmt.Sprintf("Table[rows=%d, cursor=%d, width=%d]", len(m.rows), m.Cursor(), m.width)
}
