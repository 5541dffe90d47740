package runner

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
)

// Matcher matches slash-separated relative paths against ignore globs.
// "*" stays within one path segment, "**" crosses segments. A pattern
// matches a path when it matches any run of whole segments of it, so
// "testdata" ignores "pkg/testdata/in.java" and "*_gen.go" ignores
// "pkg/a_gen.go".
type Matcher struct {
	globs []glob.Glob
}

// CompileIgnore compiles ignore patterns.
func CompileIgnore(patterns []string) (*Matcher, error) {
	m := &Matcher{globs: make([]glob.Glob, 0, len(patterns))}
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("ignore pattern %q: %w", pattern, err)
		}
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("ignore pattern %q: %w", pattern, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Match reports whether relPath is ignored.
func (m *Matcher) Match(relPath string) bool {
	if m == nil || len(m.globs) == 0 {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	starts := []int{0}
	ends := []int{}
	for i := range len(relPath) {
		if relPath[i] == '/' {
			ends = append(ends, i)
			starts = append(starts, i+1)
		}
	}
	ends = append(ends, len(relPath))

	for _, g := range m.globs {
		for _, start := range starts {
			for _, end := range ends {
				if end > start && g.Match(relPath[start:end]) {
					return true
				}
			}
		}
	}
	return false
}
