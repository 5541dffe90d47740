package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/lexkeep/pkg/config"
)

// envVarPrefix starts every environment override, as in LEXKEEP_INDENT.
const envVarPrefix = "LEXKEEP_"

// envVar binds one environment variable to the config field it overrides.
// apply receives the raw value and reports parse failures.
type envVar struct {
	suffix string
	field  string
	help   string
	// keepEmpty applies an empty value instead of skipping it.
	keepEmpty bool
	apply     func(cfg *config.Config, raw string) error
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{suffix: "INDENT", field: "indent", help: "Indent policy: canonical or inherit",
		apply: func(c *config.Config, v string) error { c.Indent = v; return nil }},
	{suffix: "LINE_ENDING", field: "line_ending", keepEmpty: true,
		help:  "Fallback line ending: lf, crlf, cr or empty",
		apply: func(c *config.Config, v string) error { c.LineEnding = v; return nil }},
	{suffix: "FLAVOR", field: "flavor", help: "Markdown flavor: commonmark or gfm",
		apply: func(c *config.Config, v string) error { c.Flavor = config.Flavor(v); return nil }},
	{suffix: "FORMAT", field: "format", help: "Output format: text, json or diff",
		apply: func(c *config.Config, v string) error { c.Format = config.OutputFormat(v); return nil }},
	{suffix: "JOBS", field: "jobs", help: "Number of parallel workers (0 = auto)",
		apply: intSetter(func(c *config.Config, n int) { c.Jobs = n })},
	{suffix: "EXTENSIONS", field: "extensions", help: "Comma-separated list of file extensions",
		apply: func(c *config.Config, v string) error { c.Extensions = splitList(v); return nil }},
	{suffix: "IGNORE", field: "ignore", help: "Comma-separated list of ignore patterns",
		apply: func(c *config.Config, v string) error { c.Ignore = splitList(v); return nil }},
	{suffix: "BACKUPS_ENABLED", field: "backups.enabled", help: "Enable backups when writing: true or false",
		apply: boolSetter(func(c *config.Config, b bool) { c.Backups.Enabled = b })},
	{suffix: "BACKUPS_MODE", field: "backups.mode", help: "Backup mode: sidecar or none",
		apply: func(c *config.Config, v string) error { c.Backups.Mode = v; return nil }},
	{suffix: "NO_BACKUPS", field: "no_backups", help: "Disable backups: true or false",
		apply: boolSetter(func(c *config.Config, b bool) { c.NoBackups = b })},
}

func intSetter(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(c *config.Config, raw string) error {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("not an integer: %q", raw)
		}
		set(c, n)
		return nil
	}
}

func boolSetter(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(c *config.Config, raw string) error {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("not a boolean: %q", raw)
		}
		set(c, b)
		return nil
	}
}

// splitList turns "a, b,,c" into [a b c].
func splitList(raw string) []string {
	var out []string
	for item := range strings.SplitSeq(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// LoadFromEnv overrides cfg with every LEXKEEP_ variable that is set.
// Empty values are ignored, except for LEXKEEP_LINE_ENDING where empty
// switches the fallback line ending off.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, ev := range envVars {
		name := envVarPrefix + ev.suffix
		raw, ok := os.LookupEnv(name)
		if !ok || (raw == "" && !ev.keepEmpty) {
			continue
		}
		if err := ev.apply(cfg, raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// GetEnvVarName returns the variable that overrides field, or "".
func GetEnvVarName(field string) string {
	for _, ev := range envVars {
		if ev.field == field {
			return envVarPrefix + ev.suffix
		}
	}
	return ""
}

// ListEnvVars maps each supported variable to its help text.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envVars))
	for _, ev := range envVars {
		vars[envVarPrefix+ev.suffix] = ev.help
	}
	return vars
}
