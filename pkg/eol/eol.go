// Package eol detects and normalizes line-ending conventions.
package eol

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoLineBreaks is returned by Detect for text without any line break.
var ErrNoLineBreaks = errors.New("text contains no line breaks")

// LineEnding is a line-break convention.
type LineEnding int

// Supported line endings. LF is the zero value.
const (
	LF LineEnding = iota
	CRLF
	CR
)

// All lists the supported line endings in detection tie-break order.
var All = []LineEnding{CRLF, LF, CR}

// Raw returns the byte sequence of the line ending.
func (le LineEnding) Raw() string {
	switch le {
	case CRLF:
		return "\r\n"
	case CR:
		return "\r"
	default:
		return "\n"
	}
}

// String returns the conventional name of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LF:
		return "LF"
	case CRLF:
		return "CRLF"
	case CR:
		return "CR"
	default:
		return fmt.Sprintf("LineEnding(%d)", int(le))
	}
}

// Describe returns the name followed by the escaped bytes, e.g. `CRLF (\r\n)`.
func (le LineEnding) Describe() string {
	escaped := strings.NewReplacer("\r", `\r`, "\n", `\n`).Replace(le.Raw())
	return le.String() + " (" + escaped + ")"
}

// Parse converts a name such as "lf" or "CRLF" into a LineEnding.
func Parse(name string) (LineEnding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lf", "\n":
		return LF, nil
	case "crlf", "\r\n":
		return CRLF, nil
	case "cr", "\r":
		return CR, nil
	default:
		return LF, fmt.Errorf("unknown line ending %q (valid: lf, crlf, cr)", name)
	}
}

// Counts holds the number of occurrences of each line-break form.
type Counts struct {
	CRLF int
	LF   int
	CR   int
}

// Total returns the number of line breaks.
func (c Counts) Total() int {
	return c.CRLF + c.LF + c.CR
}

// Mixed reports whether more than one convention occurs.
func (c Counts) Mixed() bool {
	used := 0
	for _, n := range []int{c.CRLF, c.LF, c.CR} {
		if n > 0 {
			used++
		}
	}
	return used > 1
}

// Of returns the count for one line ending.
func (c Counts) Of(le LineEnding) int {
	switch le {
	case CRLF:
		return c.CRLF
	case CR:
		return c.CR
	default:
		return c.LF
	}
}

// Count scans text once and counts CRLF pairs, lone LF and lone CR.
func Count(text string) Counts {
	var counts Counts
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				counts.CRLF++
				i++
			} else {
				counts.CR++
			}
		case '\n':
			counts.LF++
		}
	}
	return counts
}

// Detect returns the dominant line ending of text. Ties are broken in
// the order CRLF, LF, CR. Text without line breaks yields LF together
// with ErrNoLineBreaks.
func Detect(text string) (LineEnding, error) {
	counts := Count(text)
	if counts.Total() == 0 {
		return LF, ErrNoLineBreaks
	}

	best := All[0]
	for _, le := range All[1:] {
		if counts.Of(le) > counts.Of(best) {
			best = le
		}
	}
	return best, nil
}

// Normalize rewrites every line break in text to le.
func Normalize(text string, le LineEnding) string {
	if !strings.ContainsAny(text, "\r\n") {
		return text
	}

	raw := le.Raw()
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			b.WriteString(raw)
		case '\n':
			b.WriteString(raw)
		default:
			b.WriteByte(text[i])
		}
	}
	return b.String()
}

// HasBreak reports whether text contains any line break.
func HasBreak(text string) bool {
	return strings.ContainsAny(text, "\r\n")
}

// LastBreak returns the index just past the last line break in text,
// or -1 when there is none.
func LastBreak(text string) int {
	idx := strings.LastIndexAny(text, "\r\n")
	if idx < 0 {
		return -1
	}
	return idx + 1
}

// FirstBreak returns the index just past the first line break in text,
// treating CRLF as one break, or -1 when there is none.
func FirstBreak(text string) int {
	idx := strings.IndexAny(text, "\r\n")
	if idx < 0 {
		return -1
	}
	if text[idx] == '\r' && idx+1 < len(text) && text[idx+1] == '\n' {
		return idx + 2
	}
	return idx + 1
}
