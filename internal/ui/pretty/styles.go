// Package pretty renders check outcomes, summaries and line-ending tables
// for the terminal with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles holds one lipgloss style per kind of output element.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style

	FilePath lipgloss.Style
	Language lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	TableHeader lipgloss.Style
	TableBorder lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// ANSI palette indexes.
const (
	red    = "9"
	green  = "10"
	yellow = "11"
	blue   = "12"
	cyan   = "14"
	grey   = "8"
	white  = "7"
)

// NewStyles returns coloured styles, or plain ones when colorEnabled is
// false.
func NewStyles(colorEnabled bool) *Styles {
	fg := func(code string) lipgloss.Style {
		if !colorEnabled {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	bold := func(s lipgloss.Style) lipgloss.Style {
		if !colorEnabled {
			return s
		}
		return s.Bold(true)
	}

	return &Styles{
		Error:       bold(fg(red)),
		Warning:     bold(fg(yellow)),
		Success:     bold(fg(green)),
		Failure:     bold(fg(red)),
		FilePath:    bold(lipgloss.NewStyle()),
		Language:    fg(blue),
		DiffHeader:  bold(lipgloss.NewStyle()),
		DiffHunk:    fg(cyan),
		DiffAdd:     fg(green),
		DiffRemove:  fg(red),
		DiffContext: fg(grey),
		TableHeader: bold(fg(white)),
		TableBorder: fg(grey),
		Dim:         fg(grey),
		Bold:        bold(lipgloss.NewStyle()),
	}
}

// IsColorEnabled resolves a --color mode (always, never or auto) for
// writer. Auto means colour on a terminal unless NO_COLOR is set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
