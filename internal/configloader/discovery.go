package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
)

// ConfigPaths holds the configuration files found for one run, one per
// layer. An empty field means the layer has no file.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// projectNames are looked up in each directory from the working directory
// towards the repository root. Dotted names win over plain ones.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectNames = []string{
	".lexkeep.yml", ".lexkeep.yaml", ".lexkeep.toml",
	"lexkeep.yml", "lexkeep.yaml", "lexkeep.toml",
}

// layerNames are looked up inside the system and user lexkeep directories.
//
//nolint:gochecknoglobals // Read-only lookup table.
var layerNames = []string{"config.yaml", "config.yml", "config.toml"}

// repoMarkers end the upward project search.
//
//nolint:gochecknoglobals // Read-only lookup table.
var repoMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths locates the system, user and project configuration files
// that apply to workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemDir(), layerNames),
		User:    firstFile(userDir(), layerNames),
		Project: project,
	}, nil
}

func systemDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/lexkeep"
	}
	base := os.Getenv("ProgramData")
	if base == "" {
		base = `C:\ProgramData`
	}
	return filepath.Join(base, "lexkeep")
}

func userDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lexkeep")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lexkeep")
}

// firstFile returns the first of names that exists as a regular file in
// dir, or "".
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	idx := slices.IndexFunc(names, func(name string) bool {
		return fileExists(filepath.Join(dir, name))
	})
	if idx < 0 {
		return ""
	}
	return filepath.Join(dir, names[idx])
}

// FindProjectConfig walks from startDir (the working directory when
// empty) towards the filesystem root and returns the first project
// configuration file it meets. The walk gives up after a directory that
// holds a repository marker, and at the home directory.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}
		if found := firstFile(dir, projectNames); found != "" {
			return found, nil
		}
		if isRepoRoot(dir) || dir == home {
			return "", nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func isRepoRoot(dir string) bool {
	return slices.ContainsFunc(repoMarkers, func(marker string) bool {
		info, err := os.Stat(filepath.Join(dir, marker))
		return err == nil && info.IsDir()
	})
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsYAMLConfig reports whether path names a YAML configuration file.
func IsYAMLConfig(path string) bool {
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		return true
	}
	return false
}

// IsTOMLConfig reports whether path names a TOML configuration file.
func IsTOMLConfig(path string) bool {
	return filepath.Ext(path) == ".toml"
}
