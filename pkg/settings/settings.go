// Package settings provides build metadata, runtime options, and context
// helpers shared by the gridfit CLI and its packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "gridfit"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds the commit hash, semantic version, and build timestamp of
// the running binary.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the options of a single invocation.
type Run struct {
	MinLogLevel int8
	NoColor     bool
	Interactive bool
	// Output is the render format: table, preview, json, yaml or toml.
	Output string
	// ConfigPath is the column configuration that was loaded, empty for the
	// embedded default.
	ConfigPath string
}

// NewCliParams returns the defaults used by the CLI before flags are parsed.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Output:      "table",
	}
}

// DebugEnabled reports whether debug logging was requested.
func (r *Run) DebugEnabled() bool {
	return r != nil && r.MinLogLevel < 0
}
