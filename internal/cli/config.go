package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/lexkeep/internal/configloader"
	"github.com/yaklabco/lexkeep/internal/logging"
	"github.com/yaklabco/lexkeep/pkg/config"
	"github.com/yaklabco/lexkeep/pkg/runner"
)

// workingDir returns the directory given with --chdir, or the process
// working directory.
func (g *globalFlags) workingDir() (string, error) {
	if g.chdir != "" {
		abs, err := filepath.Abs(g.chdir)
		if err != nil {
			return "", fmt.Errorf("resolve --chdir: %w", err)
		}
		return abs, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return wd, nil
}

// resolve makes path absolute relative to the working directory.
func (g *globalFlags) resolve(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}

// loadConfig merges the configuration layers with the flags in cliCfg.
func (g *globalFlags) loadConfig(ctx context.Context, workDir string, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	explicit := g.configPath
	if explicit != "" {
		explicit = g.resolve(workDir, explicit)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: explicit,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, result.LoadedFrom)
	}
	logger.Debug("configuration resolved",
		logging.FieldIndent, result.Config.Indent,
		logging.FieldLineEnding, result.Config.LineEnding,
		logging.FieldFlavor, result.Config.Flavor,
		logging.FieldJobs, result.Config.Jobs,
	)

	return result.Config, nil
}

// newEngine builds the document engine for cfg.
func newEngine(ctx context.Context, cfg *config.Config) (*runner.Engine, error) {
	engine, err := runner.NewEngine(cfg, logging.FromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return engine, nil
}
