package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/lexkeep/internal/ui/pretty"
	"github.com/yaklabco/lexkeep/pkg/runner"
)

// TextReporter prints one line per file that did not round-trip, or per
// file in verbose mode, then the summary line.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter returns a TextReporter buffering onto opts.Writer.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// listed reports whether a file gets its own line.
func (r *TextReporter) listed(file runner.FileOutcome) bool {
	if r.opts.Verbose {
		return true
	}
	return file.Status != runner.StatusMatch && file.Status != runner.StatusSkipped
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	mismatched := r.write(result)
	if err := r.bw.Flush(); err != nil {
		return mismatched, fmt.Errorf("write report: %w", err)
	}
	return mismatched, nil
}

func (r *TextReporter) write(result *runner.Result) int {
	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0
	}

	for _, file := range result.Files {
		if r.listed(file) {
			fmt.Fprint(r.bw, r.styles.FormatOutcome(file, displayPath(file.Path, r.opts.WorkingDir)))
		}
	}
	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return result.Stats.FilesMismatched
}
