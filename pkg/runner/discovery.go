package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Discover finds the files named by opts. Directories are walked for
// files with a matching extension; files named explicitly are taken
// regardless of extension. Hidden entries below a walked root and paths
// matching ExcludeGlobs are skipped. The result is sorted and free of
// duplicates.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	ignore, err := CompileIgnore(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	w := &walker{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		ignore:     ignore,
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := input
		if !filepath.IsAbs(input) {
			absPath = filepath.Join(workDir, input)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if info.IsDir() {
			if err := w.walk(absPath); err != nil {
				return nil, err
			}
			continue
		}
		if !ignore.Match(w.rel(absPath)) {
			w.add(absPath)
		}
	}

	slices.Sort(w.files)
	return w.files, nil
}

type walker struct {
	ctx        context.Context
	workDir    string
	extensions []string
	ignore     *Matcher
	follow     bool
	seen       map[string]struct{}
	files      []string
}

func (w *walker) rel(path string) string {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}
		if path == root {
			return nil
		}

		hidden := strings.HasPrefix(entry.Name(), ".")
		ignored := w.ignore.Match(w.rel(path))

		if entry.IsDir() {
			if hidden || ignored {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden || ignored {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // Unreadable targets are skipped.
			}
			if info.IsDir() {
				if !w.follow {
					return nil
				}
				// Walk the target; WalkDir does not follow a symlinked root.
				return w.walk(target)
			}
		}

		if hasExtension(path, w.extensions) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
