package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/lexkeep/pkg/eol"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minFileWidth     = 20
	countWidth       = 6
	endingWidth      = 8
	heavySeparator   = "="
	defaultTermWidth = 100
)

// EOLRow is one file in the line-ending table.
type EOLRow struct {
	File string

	// Detected is false when the file has no line break.
	Detected bool
	Ending   eol.LineEnding
	Counts   eol.Counts
}

// EOLTable formats line-ending reports as an aligned table.
type EOLTable struct {
	styles    *Styles
	termWidth int
}

// NewEOLTable creates a table formatter. termWidth bounds the file
// column; 0 selects a default width.
func NewEOLTable(styles *Styles, termWidth int) *EOLTable {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &EOLTable{styles: styles, termWidth: termWidth}
}

// Format renders rows. Mixed files are flagged in the last column.
func (t *EOLTable) Format(rows []EOLRow) string {
	if len(rows) == 0 {
		return ""
	}

	fileWidth := minFileWidth
	for _, row := range rows {
		fileWidth = max(fileWidth, len(row.File))
	}
	fixed := endingWidth + 3*countWidth + 5 + 5*tablePadding
	fileWidth = max(minFileWidth, min(fileWidth, t.termWidth-fixed))
	total := fileWidth + fixed

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %*s  %s",
		fileWidth, "FILE", endingWidth, "ENDING", countWidth, "CRLF", countWidth, "LF", countWidth, "CR", "MIXED")))
	builder.WriteString("\n")
	builder.WriteString(t.styles.TableBorder.Render(strings.Repeat(heavySeparator, total)))
	builder.WriteString("\n")

	for _, row := range rows {
		ending := "none"
		if row.Detected {
			ending = row.Ending.String()
		}
		mixed := ""
		if row.Counts.Mixed() {
			mixed = t.styles.Warning.Render("yes")
		}
		builder.WriteString(fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %*s  %s\n",
			fileWidth, truncateFilePath(row.File, fileWidth),
			endingWidth, ending,
			countWidth, strconv.Itoa(row.Counts.CRLF),
			countWidth, strconv.Itoa(row.Counts.LF),
			countWidth, strconv.Itoa(row.Counts.CR),
			mixed,
		))
	}

	builder.WriteString(t.styles.TableBorder.Render(strings.Repeat(heavySeparator, total)))
	builder.WriteString("\n")
	return builder.String()
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
