package pretty

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/yaklabco/lexkeep/pkg/runner"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "1 of 4 files differ (java 2, markdown 2), 1 skipped".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	checked := stats.FilesMatched + stats.FilesMismatched

	var head string
	switch {
	case checked == 0 && stats.FilesErrored == 0:
		head = s.Dim.Render(fmt.Sprintf("No files checked (%d discovered)", stats.FilesDiscovered))
	case stats.FilesMismatched == 0:
		head = s.Success.Render(fmt.Sprintf("All %d %s round-trip", checked, plural(checked)))
	default:
		head = s.Failure.Render(fmt.Sprintf("%d of %d %s differ", stats.FilesMismatched, checked, plural(checked)))
	}

	if langs := formatLanguages(stats.ByLanguage); langs != "" {
		head += s.Dim.Render(" (" + langs + ")")
	}

	parts := []string{head}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		word := "errors"
		if stats.FilesErrored == 1 {
			word = "error"
		}
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s", stats.FilesErrored, word)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// formatLanguages renders per-language counts in name order.
func formatLanguages(counts map[string]int) string {
	names := slices.Sorted(maps.Keys(counts))
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s %d", name, counts[name]))
	}
	return strings.Join(parts, ", ")
}
