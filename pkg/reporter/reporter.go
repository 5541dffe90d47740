// Package reporter writes round-trip check results as text, JSON or
// unified diffs.
package reporter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/lexkeep/pkg/config"
	"github.com/yaklabco/lexkeep/pkg/runner"
)

// bufWriterSize sizes the buffered writers of the text and JSON reporters.
const bufWriterSize = 64 * 1024

// Options selects the output format and what it includes.
type Options struct {
	Writer io.Writer
	Format config.OutputFormat
	// Color is auto, always or never.
	Color       string
	ShowSummary bool
	// Verbose also lists files that round-tripped or were skipped.
	Verbose bool
	// Compact writes single-line JSON.
	Compact bool
	// WorkingDir, when set, makes reported paths relative to it.
	WorkingDir string
}

// DefaultOptions writes a text report with a summary to stdout.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      config.FormatText,
		Color:       "auto",
		ShowSummary: true,
	}
}

// Reporter formats and writes check results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of mismatching files and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
//
//nolint:ireturn // the concrete type depends on the format
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = config.FormatText
	}

	switch format {
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatDiff:
		return NewDiffReporter(opts), nil
	case config.FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// displayPath returns path relative to workDir when it lies below it.
func displayPath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}
