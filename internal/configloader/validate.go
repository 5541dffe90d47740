package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/lexkeep/pkg/config"
	"github.com/yaklabco/lexkeep/pkg/eol"
	"github.com/yaklabco/lexkeep/pkg/parser"
	"github.com/yaklabco/lexkeep/pkg/render"
	"github.com/yaklabco/lexkeep/pkg/runner"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "languages..jav").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	switch cfg.Indent {
	case "", config.IndentCanonical, config.IndentInherit:
	default:
		result.fail("indent", cfg.Indent, "invalid indent policy %q; must be one of: canonical, inherit", cfg.Indent)
	}

	if cfg.LineEnding != "" {
		if _, err := eol.Parse(cfg.LineEnding); err != nil {
			result.fail("line_ending", cfg.LineEnding, "invalid line ending %q; must be one of: lf, crlf, cr", cfg.LineEnding)
		}
	}

	switch cfg.Flavor {
	case "", config.FlavorCommonMark, config.FlavorGFM:
	default:
		result.fail("flavor", cfg.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor)
	}

	if cfg.Format != "" {
		if _, err := config.ParseFormat(string(cfg.Format)); err != nil {
			result.fail("format", cfg.Format, "%v", err)
		}
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.fail("backups.mode", cfg.Backups.Mode, "invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.fail("extensions", ext, "extension %q must start with a dot", ext)
		}
	}

	validateLanguages(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateLanguages warns about language names no parser or rule table knows.
func validateLanguages(cfg *config.Config, result *ValidationResult) {
	known := make(map[string]bool)
	for _, name := range parser.Default("").Languages() {
		known[name] = true
	}

	for ext, lang := range cfg.Languages {
		if !known[lang] {
			result.warn("languages."+ext, lang, "no parser for language %q", lang)
		}
	}

	builtin := make(map[string]bool)
	for _, name := range render.BuiltinNames() {
		builtin[name] = true
	}
	for lang, path := range cfg.Rules {
		if path == "" {
			result.fail("rules."+lang, path, "rule table path is empty")
			continue
		}
		if !known[lang] && !builtin[lang] {
			result.warn("rules."+lang, lang, "unknown language %q; rule table will not be used", lang)
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := runner.CompileIgnore([]string{pattern}); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
