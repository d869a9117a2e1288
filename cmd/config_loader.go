package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/gridfit/internal/config"
	"github.com/oakwood-commons/gridfit/internal/render"
	"github.com/oakwood-commons/gridfit/pkg/loader"
	"github.com/oakwood-commons/gridfit/pkg/settings"
)

// defaultConfigName is looked up under the user config directory.
const defaultConfigName = "columns.yaml"

// resolveConfigPath returns the explicit path if set, otherwise
// $XDG_CONFIG_HOME/gridfit/columns.yaml or ~/.config/gridfit/columns.yaml if
// present. An empty result means the embedded default.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	xdg := os.Getenv("XDG_CONFIG_HOME")
	candidate := ""
	if xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, defaultConfigName)
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, defaultConfigName)
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// loadDocument loads and validates the configuration at path, or the
// embedded default when path is empty.
func loadDocument(path string) (*config.Document, error) {
	var (
		doc *config.Document
		err error
	)
	if path == "" {
		doc, err = config.Default()
	} else {
		doc, err = config.Load(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := doc.Validate(); err != nil {
		name := path
		if name == "" {
			name = "embedded default"
		}
		return nil, fmt.Errorf("invalid config %s:\n%w", name, err)
	}
	return doc, nil
}

func newConfigCmd(o *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "config [config-file]",
		Short: "Print the column configuration in use",
		Long: `Print the column configuration gridfit would load, as YAML (default), JSON or TOML.
Without a file and with YAML output, the built-in example is printed verbatim
and can be used as a starting point.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := configFormat(cmd, o)
			if err != nil {
				return err
			}
			path := resolveConfigPath(configArg(args))
			if path == "" && format == loader.FormatYAML {
				_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
				return err
			}
			doc, err := loadDocument(path)
			if err != nil {
				return err
			}
			return writeDocument(cmd.OutOrStdout(), doc, format)
		},
	}
	c.AddCommand(&cobra.Command{
		Use:   "validate [config-file]",
		Short: "Check a column configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := resolveConfigPath(configArg(args))
			doc, err := loadDocument(path)
			if err != nil {
				return err
			}
			name := path
			if name == "" {
				name = "embedded default"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d columns, ok\n", name, len(doc.ColumnSettings))
			return err
		},
	})
	return c
}

// configFormat maps -o to a document format; table output means YAML here.
func configFormat(cmd *cobra.Command, o *rootOptions) (loader.Format, error) {
	if !cmd.Flags().Changed("output") {
		return loader.FormatYAML, nil
	}
	switch o.output.format {
	case render.FormatYAML, render.FormatTable:
		return loader.FormatYAML, nil
	case render.FormatJSON:
		return loader.FormatJSON, nil
	case render.FormatTOML:
		return loader.FormatTOML, nil
	}
	return "", fmt.Errorf("config output must be yaml, json or toml, got %q", o.output.format)
}

func writeDocument(w io.Writer, doc *config.Document, format loader.Format) error {
	switch format {
	case loader.FormatJSON:
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case loader.FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return enc.Encode(doc)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
}
