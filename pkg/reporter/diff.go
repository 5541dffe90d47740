package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/lexkeep/internal/ui/pretty"
	"github.com/yaklabco/lexkeep/pkg/runner"
	"github.com/yaklabco/lexkeep/pkg/textdiff"
)

// DiffReporter prints the unified diff between each file and its
// reprint, for files that did not round-trip.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter returns a DiffReporter writing straight to opts.Writer.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	var differing, added, removed int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.out, "%s: %s\n",
				r.styles.FilePath.Render(displayPath(file.Path, r.opts.WorkingDir)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if !file.Diff.HasChanges() {
			continue
		}

		differing++
		added += file.Diff.Additions
		removed += file.Diff.Deletions
		WriteDiff(r.out, r.styles, file.Diff)
	}

	if differing > 0 && r.opts.ShowSummary {
		r.writeSummary(differing, added, removed)
	}
	return differing, nil
}

// WriteDiff writes one diff with a git header, colorizing each line.
func WriteDiff(out io.Writer, styles *pretty.Styles, diff *textdiff.Diff) {
	if !diff.HasChanges() {
		return
	}

	fmt.Fprintln(out, styles.DiffHeader.Render(diff.GitHeader()))
	for line := range strings.SplitSeq(strings.TrimSuffix(diff.String(), "\n"), "\n") {
		fmt.Fprintln(out, styleDiffLine(styles, line))
	}
	fmt.Fprintln(out)
}

func styleDiffLine(styles *pretty.Styles, line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return styles.DiffHeader.Render(line)
	case strings.HasPrefix(line, "@@"):
		return styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		return styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		return styles.DiffRemove.Render(line)
	default:
		return styles.DiffContext.Render(line)
	}
}

// writeSummary prints a git --stat style total, e.g.
// "2 files differ, 3 insertions(+), 1 deletion(-)".
func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	line := plural(files, "file") + " differ"
	if additions > 0 {
		line += ", " + r.styles.DiffAdd.Render(plural(additions, "insertion")+"(+)")
	}
	if deletions > 0 {
		line += ", " + r.styles.DiffRemove.Render(plural(deletions, "deletion")+"(-)")
	}
	fmt.Fprintln(r.out, line)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
