// Package cmd implements the gridfit command line.
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/gridfit/internal/dimensions"
	"github.com/oakwood-commons/gridfit/internal/limiter"
	"github.com/oakwood-commons/gridfit/internal/measure"
	"github.com/oakwood-commons/gridfit/internal/render"
	"github.com/oakwood-commons/gridfit/internal/ui"
	"github.com/oakwood-commons/gridfit/internal/visibility"
	"github.com/oakwood-commons/gridfit/pkg/columns"
	"github.com/oakwood-commons/gridfit/pkg/loader"
	"github.com/oakwood-commons/gridfit/pkg/logger"
	"github.com/oakwood-commons/gridfit/pkg/settings"
)

const (
	fallbackWidth  = 120
	fallbackHeight = 24
	// cellPadding is added to the natural width of sampled columns.
	cellPadding = 2
)

var (
	detectSize = dimensions.Detect
	runEditor  = ui.Run
)

type rootOptions struct {
	width          float64
	scrollbarWidth float64
	defaultWidth   float64
	allowBleed     bool
	rowsPath       string
	sample         limiter.Config
	previewRows    int
	step           float64
	output         outputValue
	mode           modeValue
	start          int
	noColor        bool
	debug          bool
	interactive    bool
}

func newRootOptions() *rootOptions {
	return &rootOptions{
		start:       -1,
		step:        ui.DefaultStep,
		previewRows: 10,
		output:      outputValue{format: render.FormatTable},
	}
}

// resizeRequest is a single column resize applied before force filling.
type resizeRequest struct {
	column int
	to     float64
}

// plan is everything a run needs once the configuration and flags are merged.
type plan struct {
	layout     columns.Layout
	cols       []columns.Column
	rules      *visibility.Program
	rows       []map[string]any
	fixedWidth bool
	height     int
}

// NewRootCmd builds the gridfit command tree.
func NewRootCmd() *cobra.Command {
	o := newRootOptions()
	root := &cobra.Command{
		Use:   settings.CliBinaryName + " [config-file]",
		Short: "Resolve data grid column widths for a container",
		Long: `gridfit resolves the widths of data grid columns for a container width.

Columns come from a YAML, JSON or TOML configuration file. Without one, gridfit
looks for $XDG_CONFIG_HOME/gridfit/columns.yaml (or ~/.config/gridfit/columns.yaml)
and falls back to a built-in example.

Modes:
  standard  keep the configured widths
  flex      share the width by flex grow weight, within each column's bounds
  force     fill the width exactly, adjusting the columns right of --start`,
		Example: `  gridfit columns.yaml --width 1000
  gridfit flex columns.yaml --width 800 -o json
  gridfit force columns.yaml --width 600 --start 1
  gridfit resize columns.yaml --column 0 --to 200 --width 900
  cat rows.json | gridfit columns.yaml --rows - -o preview
  gridfit columns.yaml -i`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: o.preRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args, "", o.start, nil)
		},
	}
	o.bindFlags(root)

	root.AddCommand(
		newFlexCmd(o),
		newForceCmd(o),
		newResizeCmd(o),
		newConfigCmd(o),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *rootOptions) bindFlags(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.Float64Var(&o.width, "width", 0, "container width; defaults to the config, then the terminal width")
	pf.Float64Var(&o.scrollbarWidth, "scrollbar-width", 0, "width reserved for a vertical scrollbar")
	pf.Float64Var(&o.defaultWidth, "default-width", 0, "width force mode assumes for columns without one")
	pf.BoolVar(&o.allowBleed, "allow-bleed", false, "let force mode overflow instead of shrinking columns")
	pf.StringVar(&o.rowsPath, "rows", "", "sample rows (JSON, NDJSON, YAML or TOML) used to size unset columns; - reads stdin")
	pf.IntVar(&o.sample.Limit, "limit", 0, "use only the first N sample rows (after --offset)")
	pf.IntVar(&o.sample.Offset, "offset", 0, "skip the first N sample rows")
	pf.IntVar(&o.sample.Tail, "tail", 0, "use only the last N sample rows")
	pf.IntVar(&o.previewRows, "preview-rows", o.previewRows, "rows shown by -o preview; 0 shows all")
	pf.VarP(&o.output, "output", "o", "output format: "+outputNames())
	pf.Var(&o.mode, "mode", "column mode: "+modeNames())
	pf.IntVar(&o.start, "start", o.start, "force mode: index of the column that was resized last")
	pf.Float64Var(&o.step, "step", o.step, "interactive: width change per key press")
	pf.BoolVar(&o.noColor, "no-color", false, "disable colors")
	pf.BoolVar(&o.debug, "debug", false, "log distribution details to stderr")
	pf.BoolVarP(&o.interactive, "interactive", "i", false, "open the interactive column editor")

	_ = root.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
		out := make([]cobra.Completion, 0, len(render.Formats()))
		for _, f := range render.Formats() {
			out = append(out, string(f))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
	_ = root.RegisterFlagCompletionFunc("mode", func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
		out := make([]cobra.Completion, 0, len(columns.Modes()))
		for _, m := range columns.Modes() {
			out = append(out, string(m))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
}

func (o *rootOptions) preRun(cmd *cobra.Command, _ []string) error {
	// debug => zap.DebugLevel (-1), else zap.InfoLevel (0)
	var level int8
	if o.debug {
		level = -1
	}
	lgr := logger.Get(level)
	lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithLogger(ctx, lgr)

	run := settings.NewCliParams()
	run.MinLogLevel = level
	run.NoColor = o.noColor
	run.Interactive = o.interactive
	run.Output = o.output.String()
	cmd.SetContext(settings.IntoContext(ctx, run))
	return nil
}

func newFlexCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "flex [config-file]",
		Short: "Share the container width by flex grow weight",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args, columns.ModeFlex, -1, nil)
		},
	}
}

func newForceCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "force [config-file]",
		Short: "Fill the container width exactly, starting after --start",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args, columns.ModeForce, o.start, nil)
		},
	}
}

func newResizeCmd(o *rootOptions) *cobra.Command {
	req := &resizeRequest{}
	c := &cobra.Command{
		Use:   "resize [config-file]",
		Short: "Resize one column, then force fill the columns after it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args, columns.ModeForce, req.column, req)
		},
	}
	c.Flags().IntVar(&req.column, "column", 0, "index of the column to resize")
	c.Flags().Float64Var(&req.to, "to", 0, "new width of the column")
	_ = c.MarkFlagRequired("column")
	_ = c.MarkFlagRequired("to")
	return c
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print gridfit version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), versionString())
			return err
		},
	}
}

func versionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s)", settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime)
}

func configArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// run resolves the widths for the merged configuration and writes them. A
// non-empty mode overrides the configured one.
func (o *rootOptions) run(cmd *cobra.Command, args []string, mode columns.Mode, forceIdx int, req *resizeRequest) error {
	ctx := cmd.Context()
	lgr := logger.FromContext(ctx)
	run, ok := settings.FromContext(ctx)
	if !ok {
		run = settings.NewCliParams()
	}

	p, err := o.prepare(cmd, args, mode)
	if err != nil {
		return err
	}

	if req != nil {
		if req.column < 0 || req.column >= len(p.cols) {
			return fmt.Errorf("--column %d is out of range: the configuration has %d columns", req.column, len(p.cols))
		}
		if req.to < 0 {
			return fmt.Errorf("--to must be a non-negative number, got %v", req.to)
		}
		p.cols = columns.ResizeColumn(p.cols, req.column, req.to)
	}
	if forceIdx < -1 || forceIdx >= len(p.cols) {
		return fmt.Errorf("--start %d is out of range: the configuration has %d columns", forceIdx, len(p.cols))
	}

	if o.interactive {
		return o.runInteractive(cmd, p, forceIdx, run.NoColor)
	}

	vars := visibility.Vars{Width: p.layout.Width, Height: float64(p.height), Mode: p.layout.Mode}
	cols, err := p.rules.Apply(p.cols, vars)
	if err != nil {
		return err
	}
	resolved, report := p.layout.Apply(cols, forceIdx)
	logger.LogReport(lgr, p.layout.InnerWidth(), forceIdx, resolved, report)

	return o.write(cmd.OutOrStdout(), render.NewResult(p.layout, forceIdx, resolved, report), p.rows, run.NoColor)
}

func (o *rootOptions) runInteractive(cmd *cobra.Command, p *plan, forceIdx int, noColor bool) error {
	ctx := cmd.Context()
	progOpts, cleanup := getProgramOptions(ctx)
	defer cleanup()

	sess, err := runEditor(ctx, ui.Options{
		Columns:    p.cols,
		Rules:      p.rules,
		Layout:     p.layout,
		FixedWidth: p.fixedWidth,
		ForceIndex: forceIdx,
		Rows:       p.rows,
		Step:       o.step,
		NoColor:    noColor,
		Logger:     logger.FromContext(ctx),
	}, progOpts...)
	if err != nil {
		return fmt.Errorf("interactive editor: %w", err)
	}
	res := render.NewResult(sess.Layout, sess.ForceIndex, sess.Columns, sess.Report)
	return o.write(cmd.OutOrStdout(), res, p.rows, noColor)
}

func (o *rootOptions) write(w io.Writer, res render.Result, rows []map[string]any, noColor bool) error {
	return render.Render(w, o.output.format, res, render.Options{
		NoColor:     noColor,
		Rows:        rows,
		PreviewRows: o.previewRows,
	})
}

// prepare loads the configuration and applies the flag overrides.
func (o *rootOptions) prepare(cmd *cobra.Command, args []string, mode columns.Mode) (*plan, error) {
	path := resolveConfigPath(configArg(args))
	doc, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	if run, ok := settings.FromContext(cmd.Context()); ok {
		run.ConfigPath = path
	}

	layout, err := doc.Layout()
	if err != nil {
		return nil, err
	}
	rules, err := doc.Rules()
	if err != nil {
		return nil, err
	}
	p := &plan{layout: layout, cols: doc.Columns(), rules: rules}

	flags := cmd.Flags()
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"width", o.width},
		{"scrollbar-width", o.scrollbarWidth},
		{"default-width", o.defaultWidth},
	} {
		if flags.Changed(f.name) && f.value < 0 {
			return nil, fmt.Errorf("--%s must be a non-negative number, got %v", f.name, f.value)
		}
	}

	switch {
	case mode != "":
		p.layout.Mode = mode
	case flags.Changed("mode"):
		p.layout.Mode = o.mode.mode
	}
	if flags.Changed("allow-bleed") {
		p.layout.AllowBleed = o.allowBleed
	}
	if flags.Changed("default-width") {
		p.layout.DefaultColumnWidth = o.defaultWidth
	}
	if flags.Changed("scrollbar-width") {
		p.layout.ScrollbarWidth = o.scrollbarWidth
	}

	size := detectSize(fallbackWidth, fallbackHeight)
	p.height = size.ClientHeight
	switch {
	case flags.Changed("width"):
		p.layout.Width = o.width
		p.fixedWidth = true
	case p.layout.Width > 0:
		p.fixedWidth = true
	default:
		p.layout.Width = float64(size.ClientWidth)
	}

	if o.rowsPath != "" {
		if err := o.sample.Validate(); err != nil {
			return nil, err
		}
		rows, err := o.loadRows(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("load rows: %w", err)
		}
		rows = limiter.Apply(o.sample, rows)
		p.rows = rows
		p.cols = measure.FillUnset(p.cols, rows, cellPadding)
	}
	return p, nil
}

func (o *rootOptions) loadRows(stdin io.Reader) ([]map[string]any, error) {
	if o.rowsPath != "-" {
		return loader.LoadRecordsFile(o.rowsPath)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, err
	}
	return loader.LoadRecords(string(data))
}
