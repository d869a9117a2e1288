// Package visibility evaluates per-column visibleWhen expressions against the
// current viewport.
package visibility

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/gridfit/pkg/columns"
)

// Vars is the viewport an expression sees as "_".
type Vars struct {
	Width  float64
	Height float64
	Mode   columns.Mode
}

func (v Vars) activation() map[string]any {
	return map[string]any{
		"_": map[string]any{
			"width":  v.Width,
			"height": v.Height,
			"mode":   v.Mode.String(),
		},
	}
}

// Program holds one compiled expression per column. Columns without an
// expression have a nil entry.
type Program struct {
	programs []cel.Program
	sources  []string
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("_", cel.DynType),
		celext.Strings(),
		celext.Math(),
	)
}

// Compile parses and checks exprs. exprs[i] belongs to column i; an empty
// string means the column is always subject to its static visibility only.
func Compile(exprs []string) (*Program, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	p := &Program{programs: make([]cel.Program, len(exprs)), sources: append([]string(nil), exprs...)}
	for i, expr := range exprs {
		if expr == "" {
			continue
		}
		ast, issues := env.Compile(expr)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("column %d: compilation error: %w", i, issues.Err())
		}
		if t := ast.OutputType(); !t.IsExactType(cel.BoolType) && !t.IsExactType(cel.DynType) {
			return nil, fmt.Errorf("column %d: expression %q yields %s, not bool", i, expr, t)
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("column %d: program error: %w", i, err)
		}
		p.programs[i] = prg
	}
	return p, nil
}

// Len is the number of columns the program was compiled for.
func (p *Program) Len() int {
	if p == nil {
		return 0
	}
	return len(p.programs)
}

// Source returns the expression of column idx, or "" if it has none.
func (p *Program) Source(idx int) string {
	if p == nil || idx < 0 || idx >= len(p.sources) {
		return ""
	}
	return p.sources[idx]
}

// Visible evaluates the expression of column idx. Columns without an
// expression are visible.
func (p *Program) Visible(idx int, vars Vars) (bool, error) {
	if p == nil || idx < 0 || idx >= len(p.programs) || p.programs[idx] == nil {
		return true, nil
	}
	out, _, err := p.programs[idx].Eval(vars.activation())
	if err != nil {
		return false, fmt.Errorf("column %d: eval error: %w", idx, err)
	}
	b, ok := out.(types.Bool)
	if !ok {
		return false, fmt.Errorf("column %d: expression yields %s, not bool", idx, out.Type().TypeName())
	}
	return bool(b), nil
}

// Apply returns a copy of cols where a column is visible only when its static
// flag is set and its expression holds.
func (p *Program) Apply(cols []columns.Column, vars Vars) ([]columns.Column, error) {
	out := make([]columns.Column, len(cols))
	copy(out, cols)
	for i := range out {
		if !out[i].Visible {
			continue
		}
		ok, err := p.Visible(i, vars)
		if err != nil {
			return nil, err
		}
		out[i].Visible = ok
	}
	return out, nil
}
