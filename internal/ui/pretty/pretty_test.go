package pretty_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/lexkeep/internal/ui/pretty"
	"github.com/yaklabco/lexkeep/pkg/eol"
	"github.com/yaklabco/lexkeep/pkg/runner"
)

func TestIsColorEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", &buf))
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "buffers are not terminals")
}

func TestFormatOutcome(t *testing.T) {
	t.Parallel()
	styles := pretty.NewStyles(false)

	tests := []struct {
		name    string
		outcome runner.FileOutcome
		want    string
	}{
		{
			name:    "match",
			outcome: runner.FileOutcome{Language: "java", Status: runner.StatusMatch, LineEnding: eol.CRLF},
			want:    "  A.java  java  CRLF  ok\n",
		},
		{
			name:    "fallback",
			outcome: runner.FileOutcome{Language: "python", Status: runner.StatusMatch, LineEnding: eol.LF, Fallback: true},
			want:    "  A.java  python  LF (fallback)  ok\n",
		},
		{
			name:    "mismatch",
			outcome: runner.FileOutcome{Language: "go", Status: runner.StatusMismatch, LineEnding: eol.LF},
			want:    "  A.java  go  LF  MISMATCH\n",
		},
		{
			name:    "skipped",
			outcome: runner.FileOutcome{Status: runner.StatusSkipped},
			want:    "  A.java  skipped\n",
		},
		{
			name:    "error",
			outcome: runner.FileOutcome{Status: runner.StatusError, Error: errors.New("boom")},
			want:    "  A.java  error: boom\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatOutcome(tt.outcome, "A.java"))
		})
	}
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "nothing",
			stats: runner.Stats{FilesDiscovered: 2, FilesSkipped: 2},
			want:  "No files checked (2 discovered), 2 skipped\n",
		},
		{
			name:  "all match",
			stats: runner.Stats{FilesMatched: 3, ByLanguage: map[string]int{"markdown": 1, "java": 2}},
			want:  "All 3 files round-trip (java 2, markdown 1)\n",
		},
		{
			name:  "one file",
			stats: runner.Stats{FilesMatched: 1},
			want:  "All 1 file round-trip\n",
		},
		{
			name:  "mismatch and error",
			stats: runner.Stats{FilesMatched: 3, FilesMismatched: 1, FilesErrored: 1},
			want:  "1 of 4 files differ, 1 error\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestEOLTable(t *testing.T) {
	t.Parallel()

	table := pretty.NewEOLTable(pretty.NewStyles(false), 0)
	assert.Empty(t, table.Format(nil))

	out := table.Format([]pretty.EOLRow{
		{File: "A.java", Detected: true, Ending: eol.CRLF, Counts: eol.Counts{CRLF: 4}},
		{File: "mixed.md", Detected: true, Ending: eol.LF, Counts: eol.Counts{CRLF: 1, LF: 2}},
		{File: "flat.py"},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 6)
	assert.Contains(t, lines[0], "FILE")
	assert.Contains(t, lines[0], "MIXED")
	assert.Contains(t, lines[2], "CRLF")
	assert.NotContains(t, lines[2], "yes")
	assert.True(t, strings.HasSuffix(lines[3], "yes"))
	assert.Contains(t, lines[4], "none")
}

func TestEOLTable_TruncatesLongPaths(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("dir/", 40) + "Main.java"
	out := pretty.NewEOLTable(pretty.NewStyles(false), 80).Format([]pretty.EOLRow{{File: long, Detected: true}})
	assert.Contains(t, out, "...")
	assert.Contains(t, out, "Main.java")
}
