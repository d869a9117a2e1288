package ui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/gridfit/pkg/columns"
)

// Session is the editor state when the user quit.
type Session struct {
	Columns    []columns.Column
	Layout     columns.Layout
	Report     columns.Report
	ForceIndex int
}

// Run starts the editor and returns its final state. Extra ProgramOptions
// (e.g. custom IO) are passed to tea.NewProgram.
func Run(ctx context.Context, opts Options, progOpts ...tea.ProgramOption) (Session, error) {
	m := New(opts)
	progOpts = append([]tea.ProgramOption{tea.WithContext(ctx)}, progOpts...)
	final, err := tea.NewProgram(m, progOpts...).Run()
	if fm, ok := final.(*Model); ok && fm != nil {
		m = fm
	}
	return Session{
		Columns:    m.Columns(),
		Layout:     m.Layout(),
		Report:     m.Report(),
		ForceIndex: m.forceIdx,
	}, err
}
