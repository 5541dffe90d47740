package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/lexkeep/pkg/runner"
)

// FormatStatus renders a check status as a short styled word.
func (s *Styles) FormatStatus(status runner.Status) string {
	switch status {
	case runner.StatusMatch:
		return s.Success.Render("ok")
	case runner.StatusMismatch:
		return s.Failure.Render("MISMATCH")
	case runner.StatusSkipped:
		return s.Dim.Render("skipped")
	case runner.StatusError:
		return s.Error.Render("error")
	default:
		return string(status)
	}
}

// FormatOutcome formats one checked file as a single line, e.g.
// "  src/A.java  java  CRLF  ok". displayPath is the path to show.
func (s *Styles) FormatOutcome(outcome runner.FileOutcome, displayPath string) string {
	var builder strings.Builder

	builder.WriteString("  " + s.FilePath.Render(displayPath))
	if outcome.Language != "" {
		builder.WriteString("  " + s.Language.Render(outcome.Language))
	}
	if outcome.Status == runner.StatusMatch || outcome.Status == runner.StatusMismatch {
		ending := outcome.LineEnding.String()
		if outcome.Fallback {
			ending += s.Dim.Render(" (fallback)")
		}
		builder.WriteString("  " + ending)
	}
	builder.WriteString("  " + s.FormatStatus(outcome.Status))
	if outcome.Error != nil {
		builder.WriteString(": " + s.Error.Render(fmt.Sprint(outcome.Error)))
	}
	builder.WriteString("\n")

	return builder.String()
}
