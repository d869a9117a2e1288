package cmd

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/oakwood-commons/gridfit/internal/render"
	"github.com/oakwood-commons/gridfit/pkg/columns"
)

// modeValue is a pflag.Value restricted to the column modes.
type modeValue struct {
	mode columns.Mode
}

var _ pflag.Value = (*modeValue)(nil)

func (v *modeValue) String() string { return string(v.mode) }
func (v *modeValue) Type() string   { return "mode" }

func (v *modeValue) Set(s string) error {
	m, err := columns.ParseMode(s)
	if err != nil {
		return err
	}
	v.mode = m
	return nil
}

func modeNames() string {
	names := make([]string, 0, len(columns.Modes()))
	for _, m := range columns.Modes() {
		names = append(names, string(m))
	}
	return strings.Join(names, "|")
}

// outputValue is a pflag.Value restricted to the render formats.
type outputValue struct {
	format render.Format
}

var _ pflag.Value = (*outputValue)(nil)

func (v *outputValue) String() string { return string(v.format) }
func (v *outputValue) Type() string   { return "format" }

func (v *outputValue) Set(s string) error {
	f, err := render.ParseFormat(s)
	if err != nil {
		return err
	}
	v.format = f
	return nil
}

func outputNames() string {
	names := make([]string, 0, len(render.Formats()))
	for _, f := range render.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, "|")
}
