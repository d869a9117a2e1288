// Package render prints a resolved column layout.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/gridfit/pkg/columns"
)

// Format is an output format.
type Format string

const (
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatTOML    Format = "toml"
	FormatPreview Format = "preview"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatTable, FormatJSON, FormatYAML, FormatTOML, FormatPreview}
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	names := make([]string, 0, len(Formats()))
	for _, known := range Formats() {
		names = append(names, string(known))
	}
	return "", fmt.Errorf("invalid output format %q (expected one of %s)", s, strings.Join(names, ", "))
}

// ColumnResult is one resolved column.
type ColumnResult struct {
	Prop     string  `json:"prop" yaml:"prop" toml:"prop"`
	Name     string  `json:"name" yaml:"name" toml:"name"`
	Width    float64 `json:"width" yaml:"width" toml:"width"`
	MinWidth float64 `json:"minWidth" yaml:"minWidth" toml:"minWidth"`
	MaxWidth float64 `json:"maxWidth,omitempty" yaml:"maxWidth,omitempty" toml:"maxWidth,omitempty"`
	FlexGrow float64 `json:"flexGrow" yaml:"flexGrow" toml:"flexGrow"`
	Pinned   string  `json:"pinned" yaml:"pinned" toml:"pinned"`
	Visible  bool    `json:"visible" yaml:"visible" toml:"visible"`
	Resize   bool    `json:"canAutoResize" yaml:"canAutoResize" toml:"canAutoResize"`
}

// Result is a resolved layout ready for output.
type Result struct {
	Mode       string         `json:"mode" yaml:"mode" toml:"mode"`
	Width      float64        `json:"width" yaml:"width" toml:"width"`
	ForceIndex int            `json:"forceIndex" yaml:"forceIndex" toml:"forceIndex"`
	Total      float64        `json:"total" yaml:"total" toml:"total"`
	Residual   float64        `json:"residual" yaml:"residual" toml:"residual"`
	Iterations int            `json:"iterations" yaml:"iterations" toml:"iterations"`
	Frozen     int            `json:"frozen" yaml:"frozen" toml:"frozen"`
	Columns    []ColumnResult `json:"columns" yaml:"columns" toml:"columns"`

	resolved []columns.Column
}

// NewResult captures the outcome of layout.Apply.
func NewResult(layout columns.Layout, forceIdx int, cols []columns.Column, report columns.Report) Result {
	res := Result{
		Mode:       report.Mode.String(),
		Width:      layout.InnerWidth(),
		ForceIndex: forceIdx,
		Total:      columns.TotalWidth(cols),
		Residual:   report.Residual,
		Iterations: report.Iterations,
		Frozen:     report.Frozen,
		Columns:    make([]ColumnResult, 0, len(cols)),
		resolved:   append([]columns.Column(nil), cols...),
	}
	for _, c := range cols {
		res.Columns = append(res.Columns, ColumnResult{
			Prop:     c.Prop,
			Name:     c.Name,
			Width:    c.Width,
			MinWidth: c.MinWidth,
			MaxWidth: c.MaxWidth,
			FlexGrow: c.FlexGrow,
			Pinned:   string(c.Pinned),
			Visible:  c.Visible,
			Resize:   c.CanAutoResize,
		})
	}
	return res
}

// Options controls rendering.
type Options struct {
	NoColor bool
	// Rows feed the preview format.
	Rows []map[string]any
	// PreviewRows caps the number of preview rows; 0 means all.
	PreviewRows int
}

// Render writes res to w in the given format.
func Render(w io.Writer, format Format, res Result, opts Options) error {
	var out string
	switch format {
	case FormatTable, "":
		out = Table(res, opts)
	case FormatPreview:
		out = Preview(res, opts)
	case FormatJSON:
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		out = string(b) + "\n"
	case FormatYAML:
		var buf strings.Builder
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		out = buf.String()
	case FormatTOML:
		var buf strings.Builder
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		out = buf.String()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	_, err := io.WriteString(w, out)
	return err
}

// FormatWidth prints a width with at most two decimals.
func FormatWidth(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
