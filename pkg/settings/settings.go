// Package settings provides build metadata, per-run options, and context
// helpers shared by the tabv command and its packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "tabv"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the resolved options for a single execution: flags merged on top
// of the config file.
type Run struct {
	MinLogLevel int8
	Root        string
	Patterns    []string
	Where       string
	Theme       string
	KeyMode     string
	LogFile     string
	NoColor     bool
}

// DefaultPatterns are the file globs discovered when neither flags nor config
// name any.
var DefaultPatterns = []string{"*.csv", "*.tsv", "*.xlsx", "*.json", "*.yaml", "*.yml", "*.toml"}

// NewCliParams returns the defaults used before flags and config are applied.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Root:        ".",
		Patterns:    append([]string(nil), DefaultPatterns...),
		Theme:       "dark",
		KeyMode:     "vim",
	}
}
