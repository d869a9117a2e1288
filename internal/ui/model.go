// Package ui is the interactive column layout editor. Window size messages
// drive recalculation, so the layout follows the terminal as it is resized.
package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/gridfit/internal/render"
	"github.com/oakwood-commons/gridfit/internal/ui/table"
	"github.com/oakwood-commons/gridfit/internal/visibility"
	"github.com/oakwood-commons/gridfit/pkg/columns"
	"github.com/oakwood-commons/gridfit/pkg/logger"
)

// DefaultStep is the resize increment when Options.Step is unset.
const DefaultStep = 10

// Options configures the editor.
type Options struct {
	Columns []columns.Column
	Rules   *visibility.Program
	Layout  columns.Layout
	// FixedWidth keeps Layout.Width instead of following the window.
	FixedWidth bool
	ForceIndex int
	// Rows are sample records shown at the resolved widths.
	Rows    []map[string]any
	Step    float64
	NoColor bool
	Logger  *logr.Logger
}

type columnRow struct {
	index int
	col   columns.Column
}

// Model is the bubbletea model of the editor.
type Model struct {
	// base is the configured column set in its original order; cols[i]
	// started out as base[order[i]].
	base  []columns.Column
	cols  []columns.Column
	order []int

	rules      *visibility.Program
	layout     columns.Layout
	fixedWidth bool
	forceIdx   int
	report     columns.Report
	rows       []map[string]any
	step       float64
	noColor    bool
	lgr        *logr.Logger

	winW, winH int
	cursor     int
	showHelp   bool
	err        error
	notice     string
	noticeErr  bool

	summary *table.Model[columnRow]
}

// New builds the model and resolves the initial layout.
func New(opts Options) *Model {
	lgr := opts.Logger
	if lgr == nil {
		discard := logr.Discard()
		lgr = &discard
	}
	step := opts.Step
	if step <= 0 {
		step = DefaultStep
	}
	if opts.Layout.Mode == "" {
		opts.Layout.Mode = columns.ModeStandard
	}
	m := &Model{
		base:       append([]columns.Column(nil), opts.Columns...),
		cols:       append([]columns.Column(nil), opts.Columns...),
		order:      identity(len(opts.Columns)),
		rules:      opts.Rules,
		layout:     opts.Layout,
		fixedWidth: opts.FixedWidth,
		rows:       opts.Rows,
		step:       step,
		noColor:    opts.NoColor,
		lgr:        lgr,
	}
	m.summary = table.NewModel([]table.Column{
		{Title: "#", Width: 3},
		{Title: "COLUMN", Width: 18, MaxWidth: 40, FlexGrow: 1},
		{Title: "PIN", Width: 7},
		{Title: "MIN", Width: 6},
		{Title: "MAX", Width: 6},
		{Title: "FLEX", Width: 5},
		{Title: "WIDTH", Width: 10},
	}, toSummaryRow)
	m.summary.SetNoColor(m.noColor)
	if !m.noColor {
		m.summary.SetColors(lipgloss.Color("12"), lipgloss.Color("229"), lipgloss.Color("57"))
	}
	m.recalculate(opts.ForceIndex)
	return m
}

func toSummaryRow(r columnRow) table.Row {
	maxW := "-"
	if r.col.HasMax() {
		maxW = render.FormatWidth(r.col.MaxWidth)
	}
	width := render.FormatWidth(r.col.Width)
	if !r.col.Visible {
		width = "hidden"
	}
	return table.Row{
		strconv.Itoa(r.index),
		r.col.Key(),
		string(r.col.Pinned),
		render.FormatWidth(r.col.MinWidth),
		maxW,
		render.FormatWidth(r.col.FlexGrow),
		width,
	}
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// width is the container width the layout is resolved against.
func (m *Model) width() float64 {
	if m.fixedWidth || m.winW <= 0 {
		return m.layout.Width
	}
	return float64(m.winW)
}

// recalculate re-evaluates visibility and redistributes the widths.
// forceIdx is the column the user just resized, or -1.
func (m *Model) recalculate(forceIdx int) {
	m.err = nil
	layout := m.layout
	layout.Width = m.width()
	vars := visibility.Vars{Width: layout.Width, Height: float64(m.winH), Mode: layout.Mode}

	cols := make([]columns.Column, len(m.cols))
	copy(cols, m.cols)
	for i := range cols {
		if layout.Mode == columns.ModeFlex && cols[i].CanAutoResize {
			// flex widths are derived from the weights, so start from the
			// lower bound instead of the previous resolution
			cols[i].Width = cols[i].Clamp(0)
		}
		cols[i].Visible = m.base[m.order[i]].Visible
		if !cols[i].Visible {
			continue
		}
		ok, err := m.rules.Visible(m.order[i], vars)
		if err != nil {
			m.err = err
			continue
		}
		cols[i].Visible = ok
	}

	m.cols, m.report = layout.Apply(cols, forceIdx)
	m.forceIdx = forceIdx
	logger.LogReport(m.lgr, layout.InnerWidth(), forceIdx, m.cols, m.report)
	m.syncTable()
}

func (m *Model) syncTable() {
	rows := make([]columnRow, len(m.cols))
	for i, c := range m.cols {
		rows[i] = columnRow{index: i, col: c}
	}
	height := len(rows)
	if m.winH > 0 {
		height = min(height, max(3, m.winH/2))
	}
	m.summary.SetSize(m.winW, height)
	m.summary.SetRows(rows)
	m.summary.SetCursor(m.cursor)
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.winW == msg.Width && m.winH == msg.Height {
			return m, nil
		}
		m.winW, m.winH = msg.Width, msg.Height
		m.recalculate(-1)
		return m, nil
	case tea.KeyPressMsg:
		return m, m.handleKey(msg.String())
	}
	return m, nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	action := ActionFor(key)
	m.notice, m.noticeErr = "", false
	if action == ActionQuit {
		return tea.Quit
	}
	if action == ActionHelp {
		m.showHelp = !m.showHelp
		return nil
	}
	if len(m.cols) == 0 {
		return nil
	}

	switch action {
	case ActionPrev:
		if m.cursor > 0 {
			m.cursor--
			m.summary.SetCursor(m.cursor)
		}
	case ActionNext:
		if m.cursor < len(m.cols)-1 {
			m.cursor++
			m.summary.SetCursor(m.cursor)
		}
	case ActionNarrow:
		m.resize(-1)
	case ActionWiden:
		m.resize(1)
	case ActionMoveLeft:
		m.move(m.cursor - 1)
	case ActionMoveRight:
		m.move(m.cursor + 1)
	case ActionCycleMode:
		m.layout.Mode = m.layout.Mode.Next()
		m.recalculate(-1)
	case ActionToggleBleed:
		m.layout.AllowBleed = !m.layout.AllowBleed
		m.recalculate(m.forceIdx)
	case ActionCopy:
		m.copySnapshot()
	case ActionReset:
		m.cols = append([]columns.Column(nil), m.base...)
		m.order = identity(len(m.base))
		m.recalculate(-1)
	}
	return nil
}

// resize widens (dir 1) or narrows (dir -1) the selected column. Flex mode
// changes the flex grow weight since widths are derived from it.
func (m *Model) resize(dir float64) {
	c := m.cols[m.cursor]
	switch m.layout.Mode {
	case columns.ModeFlex:
		m.cols[m.cursor].FlexGrow = max(0, c.FlexGrow+dir)
		m.recalculate(-1)
	case columns.ModeForce:
		m.cols = columns.ResizeColumn(m.cols, m.cursor, c.Width+dir*m.step)
		m.recalculate(m.cursor)
	default:
		m.cols = columns.ResizeColumn(m.cols, m.cursor, c.Width+dir*m.step)
		m.recalculate(-1)
	}
}

func (m *Model) move(to int) {
	if to < 0 || to >= len(m.cols) {
		return
	}
	m.cols = columns.MoveColumn(m.cols, m.cursor, to)
	m.order[m.cursor], m.order[to] = m.order[to], m.order[m.cursor]
	m.cursor = to
	m.recalculate(-1)
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	return v
}

// Render draws the editor: title, preview, column table, status and keys.
func (m *Model) Render() string {
	titleStyle := lipgloss.NewStyle()
	warnStyle := lipgloss.NewStyle()
	errStyle := lipgloss.NewStyle()
	if !m.noColor {
		titleStyle = titleStyle.Bold(true).Foreground(lipgloss.Color("12"))
		warnStyle = warnStyle.Foreground(lipgloss.Color("214"))
		errStyle = errStyle.Bold(true).Foreground(lipgloss.Color("9"))
	}

	layout := m.layout
	layout.Width = m.width()
	title := fmt.Sprintf("gridfit  %s  %s / %s", m.report.Mode, render.FormatWidth(columns.TotalWidth(m.cols)), render.FormatWidth(layout.InnerWidth()))
	if m.layout.AllowBleed {
		title += "  bleed"
	}

	var b strings.Builder
	b.WriteString(m.clip(titleStyle.Render(title)) + "\n\n")

	preview := render.Preview(render.NewResult(layout, m.forceIdx, m.cols, m.report), render.Options{
		NoColor:     m.noColor,
		Rows:        m.rows,
		PreviewRows: m.previewRows(),
	})
	for _, line := range strings.Split(strings.TrimRight(preview, "\n"), "\n") {
		b.WriteString(m.clip(line) + "\n")
	}
	b.WriteString("\n")
	for _, line := range strings.Split(m.summary.View(), "\n") {
		b.WriteString(m.clip(line) + "\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(m.clip(errStyle.Render("visibleWhen: "+m.err.Error())) + "\n")
	case m.noticeErr:
		b.WriteString(m.clip(errStyle.Render(m.notice)) + "\n")
	case m.notice != "":
		b.WriteString(m.clip(m.notice) + "\n")
	case !m.report.Converged():
		b.WriteString(m.clip(warnStyle.Render(fmt.Sprintf("column bounds leave %s unresolved", render.FormatWidth(m.report.Residual)))) + "\n")
	default:
		b.WriteString("\n")
	}
	if m.showHelp {
		b.WriteString(renderHelp(m.noColor, m.winW))
	}
	b.WriteString(renderFooter(m.noColor, m.winW))
	return b.String()
}

// previewRows is how many sample rows fit beside the other panels.
func (m *Model) previewRows() int {
	if m.winH <= 0 {
		return 5
	}
	// title, blank, preview header, blank, table, status, footer
	used := 6 + m.summary.Height()
	if m.showHelp {
		used += len(longHelp)
	}
	return max(0, m.winH-used)
}

func (m *Model) clip(line string) string {
	if m.winW <= 0 {
		return line
	}
	return ansi.Truncate(line, m.winW, "")
}

// Columns returns the current columns.
func (m *Model) Columns() []columns.Column {
	return append([]columns.Column(nil), m.cols...)
}

// Report returns the outcome of the last distribution.
func (m *Model) Report() columns.Report {
	return m.report
}

// Cursor is the selected column index.
func (m *Model) Cursor() int {
	return m.cursor
}

// Layout returns the current layout settings and the width in use.
func (m *Model) Layout() columns.Layout {
	l := m.layout
	l.Width = m.width()
	return l
}
