// Package runner checks and processes many files concurrently, one
// preservation session per file.
package runner

import "github.com/yaklabco/lexkeep/pkg/config"

// Options controls discovery and the round-trip check.
type Options struct {
	// Paths are files or directories to process. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and anchors ignore globs.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions are the file extensions picked up when walking
	// directories. Empty means config.DefaultExtensions.
	Extensions []string

	// ExcludeGlobs skip files and directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the number of workers. 0 or negative means runtime.NumCPU().
	Jobs int
}

// OptionsFromConfig fills Options from the resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	return Options{
		Paths:        paths,
		Extensions:   cfg.Extensions,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
	}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
