// Package config reads gridfit column configurations.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/oakwood-commons/gridfit/internal/visibility"
	"github.com/oakwood-commons/gridfit/pkg/columns"
	"github.com/oakwood-commons/gridfit/pkg/loader"
)

//go:embed default_columns.yaml
var embeddedDefault []byte

// LayoutConfig is the layout block of a configuration document.
type LayoutConfig struct {
	Mode               string  `json:"mode,omitempty" yaml:"mode,omitempty" toml:"mode,omitempty"`
	Width              float64 `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	ScrollbarWidth     float64 `json:"scrollbarWidth,omitempty" yaml:"scrollbarWidth,omitempty" toml:"scrollbarWidth,omitempty"`
	DefaultColumnWidth float64 `json:"defaultColumnWidth,omitempty" yaml:"defaultColumnWidth,omitempty" toml:"defaultColumnWidth,omitempty"`
	AllowBleed         bool    `json:"allowBleed,omitempty" yaml:"allowBleed,omitempty" toml:"allowBleed,omitempty"`
}

// ColumnConfig is one entry of the columns list. Pointer fields default to
// true when absent.
type ColumnConfig struct {
	Prop          string  `json:"prop,omitempty" yaml:"prop,omitempty" toml:"prop,omitempty"`
	Name          string  `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Width         float64 `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	MinWidth      float64 `json:"minWidth,omitempty" yaml:"minWidth,omitempty" toml:"minWidth,omitempty"`
	MaxWidth      float64 `json:"maxWidth,omitempty" yaml:"maxWidth,omitempty" toml:"maxWidth,omitempty"`
	FlexGrow      float64 `json:"flexGrow,omitempty" yaml:"flexGrow,omitempty" toml:"flexGrow,omitempty"`
	CanAutoResize *bool   `json:"canAutoResize,omitempty" yaml:"canAutoResize,omitempty" toml:"canAutoResize,omitempty"`
	Visible       *bool   `json:"visible,omitempty" yaml:"visible,omitempty" toml:"visible,omitempty"`
	VisibleWhen   string  `json:"visibleWhen,omitempty" yaml:"visibleWhen,omitempty" toml:"visibleWhen,omitempty"`
	Pinned        string  `json:"pinned,omitempty" yaml:"pinned,omitempty" toml:"pinned,omitempty"`
}

// Document is a full configuration file.
type Document struct {
	LayoutSettings LayoutConfig   `json:"layout" yaml:"layout" toml:"layout"`
	ColumnSettings []ColumnConfig `json:"columns" yaml:"columns" toml:"columns"`
}

// DefaultYAML returns a copy of the embedded default configuration.
func DefaultYAML() []byte {
	return append([]byte(nil), embeddedDefault...)
}

// Default parses the embedded default configuration.
func Default() (*Document, error) {
	doc, err := Parse(embeddedDefault, loader.FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("decode embedded default config: %w", err)
	}
	return doc, nil
}

// Load reads a configuration file. The format follows the file extension,
// falling back to the content. Unknown fields are rejected.
func Load(path string) (*Document, error) {
	var doc Document
	if err := loader.DecodeFile(path, &doc, true); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Parse decodes a configuration document. An empty format is detected from
// the content.
func Parse(data []byte, format loader.Format) (*Document, error) {
	if format == "" {
		format = loader.DetectFormat("", data)
	}
	var doc Document
	if err := loader.Decode(data, format, &doc, true); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate reports every problem in the document at once.
func (d *Document) Validate() error {
	var errs []error
	if _, err := columns.ParseMode(d.LayoutSettings.Mode); err != nil {
		errs = append(errs, fmt.Errorf("layout: %w", err))
	}
	errs = append(errs, nonNegative("layout",
		field{"width", d.LayoutSettings.Width},
		field{"scrollbarWidth", d.LayoutSettings.ScrollbarWidth},
		field{"defaultColumnWidth", d.LayoutSettings.DefaultColumnWidth},
	)...)

	for i, c := range d.ColumnSettings {
		where := fmt.Sprintf("columns[%d]", i)
		if c.Prop == "" && c.Name == "" {
			errs = append(errs, fmt.Errorf("%s: prop or name is required", where))
		} else {
			where = fmt.Sprintf("columns[%d] (%s)", i, c.key())
		}
		errs = append(errs, nonNegative(where,
			field{"width", c.Width},
			field{"minWidth", c.MinWidth},
			field{"maxWidth", c.MaxWidth},
			field{"flexGrow", c.FlexGrow},
		)...)
		if _, ok := columns.ParsePin(c.Pinned); !ok {
			errs = append(errs, fmt.Errorf("%s: invalid pin %q (expected left, center or right)", where, c.Pinned))
		}
	}

	if _, err := visibility.Compile(d.Expressions()); err != nil {
		errs = append(errs, fmt.Errorf("visibleWhen: %w", err))
	}
	return errors.Join(errs...)
}

// Layout converts the layout block.
func (d *Document) Layout() (columns.Layout, error) {
	mode, err := columns.ParseMode(d.LayoutSettings.Mode)
	if err != nil {
		return columns.Layout{}, err
	}
	return columns.Layout{
		Mode:               mode,
		Width:              d.LayoutSettings.Width,
		ScrollbarWidth:     d.LayoutSettings.ScrollbarWidth,
		DefaultColumnWidth: d.LayoutSettings.DefaultColumnWidth,
		AllowBleed:         d.LayoutSettings.AllowBleed,
	}, nil
}

// Columns converts the column list, filling in defaults. A missing prop is
// derived from the name and a missing name from the prop.
func (d *Document) Columns() []columns.Column {
	out := make([]columns.Column, 0, len(d.ColumnSettings))
	for _, c := range d.ColumnSettings {
		prop, name := c.Prop, c.Name
		if prop == "" {
			prop = camelCase(name)
		}
		if name == "" {
			name = deCamelCase(prop)
		}
		pin, ok := columns.ParsePin(c.Pinned)
		if !ok {
			pin = columns.PinCenter
		}
		out = append(out, columns.New(prop,
			columns.WithName(name),
			columns.WithWidth(c.Width),
			columns.WithMinWidth(c.MinWidth),
			columns.WithMaxWidth(c.MaxWidth),
			columns.WithFlexGrow(c.FlexGrow),
			columns.WithAutoResize(boolOr(c.CanAutoResize, true)),
			columns.WithVisible(boolOr(c.Visible, true)),
			columns.WithPin(pin),
		))
	}
	return out
}

// Expressions returns the visibleWhen expression of every column, in order.
func (d *Document) Expressions() []string {
	out := make([]string, len(d.ColumnSettings))
	for i, c := range d.ColumnSettings {
		out[i] = strings.TrimSpace(c.VisibleWhen)
	}
	return out
}

// Rules compiles the visibleWhen expressions.
func (d *Document) Rules() (*visibility.Program, error) {
	return visibility.Compile(d.Expressions())
}

type field struct {
	name  string
	value float64
}

func nonNegative(where string, fields ...field) []error {
	var errs []error
	for _, f := range fields {
		if f.value < 0 || math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			errs = append(errs, fmt.Errorf("%s: %s must be a non-negative number, got %v", where, f.name, f.value))
		}
	}
	return errs
}

func (c ColumnConfig) key() string {
	if c.Prop != "" {
		return c.Prop
	}
	return c.Name
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// camelCase turns "First Name" into "firstName".
func camelCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		if i > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		b.WriteString(string(runes))
	}
	return b.String()
}

// deCamelCase turns "firstName" or "first_name" into "First Name".
func deCamelCase(s string) string {
	var b strings.Builder
	prevLower := false
	startWord := true
	for _, r := range s {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			if b.Len() > 0 && !startWord {
				b.WriteByte(' ')
			}
			startWord = true
			prevLower = false
			continue
		case unicode.IsUpper(r) && prevLower:
			b.WriteByte(' ')
			startWord = true
		}
		if startWord {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(r)
		}
		startWord = false
		prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
	}
	return strings.TrimSpace(b.String())
}
