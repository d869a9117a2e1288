package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/gridfit/internal/visibility"
	"github.com/oakwood-commons/gridfit/pkg/columns"
	"github.com/oakwood-commons/gridfit/pkg/loader"
)

func TestDefault(t *testing.T) {
	doc, err := Default()
	require.NoError(t, err)
	require.NoError(t, doc.Validate())

	layout, err := doc.Layout()
	require.NoError(t, err)
	assert.Equal(t, columns.ModeForce, layout.Mode)
	assert.Equal(t, 300.0, layout.DefaultColumnWidth)

	cols := doc.Columns()
	require.Len(t, cols, 4)
	assert.Equal(t, "name", cols[0].Prop)
	assert.Equal(t, "Name", cols[0].Name)
	assert.Equal(t, columns.PinLeft, cols[0].Pinned)
	assert.Equal(t, 60.0, cols[2].Width)
	assert.False(t, cols[2].CanAutoResize)
	assert.Equal(t, "Company", cols[3].Name)

	assert.Equal(t, []string{"", "", "", "_.width >= 600"}, doc.Expressions())
}

func TestDefaultYAMLIsACopy(t *testing.T) {
	a := DefaultYAML()
	a[0] = 'X'
	assert.NotEqual(t, a[0], DefaultYAML()[0])
}

func TestParseFormats(t *testing.T) {
	inputs := map[loader.Format]string{
		loader.FormatYAML: `
layout:
  mode: flex
  width: 800
columns:
  - prop: id
    width: 100
    canAutoResize: false
  - name: Email Address
    flexGrow: 2
    visible: false
`,
		loader.FormatJSON: `{
  "layout": {"mode": "flex", "width": 800},
  "columns": [
    {"prop": "id", "width": 100, "canAutoResize": false},
    {"name": "Email Address", "flexGrow": 2, "visible": false}
  ]
}`,
		loader.FormatTOML: `
[layout]
mode = "flex"
width = 800

[[columns]]
prop = "id"
width = 100
canAutoResize = false

[[columns]]
name = "Email Address"
flexGrow = 2
visible = false
`,
	}
	for format, input := range inputs {
		t.Run(string(format), func(t *testing.T) {
			for _, f := range []loader.Format{format, ""} {
				doc, err := Parse([]byte(input), f)
				require.NoError(t, err)
				require.NoError(t, doc.Validate())

				layout, err := doc.Layout()
				require.NoError(t, err)
				assert.Equal(t, columns.ModeFlex, layout.Mode)
				assert.Equal(t, 800.0, layout.Width)

				cols := doc.Columns()
				require.Len(t, cols, 2)
				assert.Equal(t, "id", cols[0].Prop)
				assert.Equal(t, "Id", cols[0].Name)
				assert.False(t, cols[0].CanAutoResize)
				assert.True(t, cols[0].Visible)
				assert.Equal(t, "emailAddress", cols[1].Prop)
				assert.Equal(t, 2.0, cols[1].FlexGrow)
				assert.False(t, cols[1].Visible)
				assert.True(t, cols[1].CanAutoResize)
			}
		})
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("columns:\n  - prop: id\n    widht: 100\n"), loader.FormatYAML)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "columns.toml")
	require.NoError(t, os.WriteFile(path, []byte("[layout]\nmode = \"standard\"\n\n[[columns]]\nprop = \"id\"\n"), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "standard", doc.LayoutSettings.Mode)
	require.Len(t, doc.ColumnSettings, 1)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	doc := &Document{
		LayoutSettings: LayoutConfig{Mode: "stretch", Width: -1},
		ColumnSettings: []ColumnConfig{
			{},
			{Prop: "id", Width: -5, FlexGrow: -1},
			{Prop: "email", Pinned: "top"},
			{Prop: "notes", VisibleWhen: "_.width >"},
		},
	}
	err := doc.Validate()
	require.Error(t, err)

	for _, want := range []string{
		`invalid column mode "stretch"`,
		"layout: width must be a non-negative number",
		"columns[0]: prop or name is required",
		"columns[1] (id): width must be a non-negative number",
		"columns[1] (id): flexGrow must be a non-negative number",
		`columns[2] (email): invalid pin "top"`,
		"visibleWhen: column 3",
	} {
		assert.ErrorContains(t, err, want)
	}

	_, err = doc.Layout()
	assert.Error(t, err)
}

func TestRules(t *testing.T) {
	doc, err := Default()
	require.NoError(t, err)

	rules, err := doc.Rules()
	require.NoError(t, err)

	visible, err := rules.Apply(doc.Columns(), visibility.Vars{Width: 500, Mode: columns.ModeForce})
	require.NoError(t, err)
	assert.False(t, visible[3].Visible)
	assert.True(t, visible[0].Visible)
}

func TestNameConversions(t *testing.T) {
	for in, want := range map[string]string{
		"firstName":  "First Name",
		"first_name": "First Name",
		"id":         "Id",
		"HTTPStatus": "HTTPStatus",
		"address2":   "Address2",
		"zip-code":   "Zip Code",
	} {
		assert.Equal(t, want, deCamelCase(in), in)
	}
	for in, want := range map[string]string{
		"First Name":    "firstName",
		"email address": "emailAddress",
		"ID":            "id",
		"":              "",
	} {
		assert.Equal(t, want, camelCase(in), in)
	}
}
