// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support and validation.
package configloader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/lexkeep/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (LEXKEEP_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.lexkeep.{yml,yaml,toml} upward search)
//  5. User config ($XDG_CONFIG_HOME/lexkeep/config.{yaml,yml,toml})
//  6. System config (/etc/lexkeep/config.{yaml,yml,toml})
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	if opts.ExplicitPath != "" {
		paths.Explicit = opts.ExplicitPath
	}

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name string
		path string
		skip bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}
	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		fileCfg, err := LoadFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		validation := ValidateWithFile(fileCfg, layer.path)
		if !validation.Valid() {
			return nil, &validation.Errors[0]
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// LoadFile loads a configuration file. The format follows the file
// extension: ".toml" is TOML, anything else YAML.
func LoadFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	if IsTOMLConfig(path) {
		return config.FromTOML(content)
	}
	return config.FromYAML(content)
}

// WriteTemplate writes a commented default configuration to path. The
// format follows the file extension. An existing file is only replaced
// when force is set.
func WriteTemplate(path string, force bool) error {
	if fileExists(path) && !force {
		return fmt.Errorf("%s: %w", path, os.ErrExist)
	}

	format := config.TemplateYAML
	if IsTOMLConfig(path) {
		format = config.TemplateTOML
	}
	content, err := config.GenerateTemplate(format)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Confirm asks a yes/no question on out and reads the answer from in.
// An empty answer accepts def.
func Confirm(in io.Reader, out io.Writer, question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	if _, err := fmt.Fprintf(out, "%s %s ", question, hint); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false, fmt.Errorf("read response: %w", err)
	}

	switch strings.TrimSpace(strings.ToLower(response)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// IsInteractive returns true if stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
