// Package config defines core configuration types for lexkeep.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

// BackupsConfig controls backup behavior when writing edited files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Mode    string `yaml:"mode" toml:"mode"` // "sidecar" or "none"
}

// OutputFormat specifies the output format for reports.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
)

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// Indent policies for inserted nodes.
const (
	IndentCanonical = "canonical"
	IndentInherit   = "inherit"
)

// Config is the root configuration structure for lexkeep.
type Config struct {
	// Indent selects how inserted nodes are indented: "canonical" uses
	// the rule table, "inherit" copies the indentation of a neighbour.
	Indent string `yaml:"indent" toml:"indent"`

	// LineEnding is the fallback used for files without any line break
	// ("lf", "crlf", "cr"). Empty makes such files an error.
	LineEnding string `yaml:"line_ending" toml:"line_ending"`

	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor" toml:"flavor"`

	// Extensions lists the file extensions picked up during discovery.
	Extensions []string `yaml:"extensions" toml:"extensions"`

	// Languages maps a file extension to a language, overriding detection.
	Languages map[string]string `yaml:"languages" toml:"languages"`

	// Rules maps a language to a rule table file that overrides the
	// built-in table for that language.
	Rules map[string]string `yaml:"rules" toml:"rules"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore" toml:"ignore"`

	// Backups configures backup behavior when writing.
	Backups BackupsConfig `yaml:"backups" toml:"backups"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// Write writes edited files back in place.
	Write bool `yaml:"-" toml:"-"`

	// Diff shows edits as a unified diff.
	Diff bool `yaml:"-" toml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `yaml:"-" toml:"-"`
}

// DefaultExtensions are the file extensions discovered when none are configured.
//
//nolint:gochecknoglobals // Read-only defaults.
var DefaultExtensions = []string{".java", ".go", ".py", ".js", ".rs", ".md", ".markdown"}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Indent:     IndentCanonical,
		LineEnding: "lf",
		Flavor:     FlavorCommonMark,
		Extensions: append([]string(nil), DefaultExtensions...),
		Languages:  make(map[string]string),
		Rules:      make(map[string]string),
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}
