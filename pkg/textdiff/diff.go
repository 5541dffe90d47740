package textdiff

import (
	"fmt"
	"strings"
)

// Diff represents a unified diff between original and modified content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Original is the original file content.
	Original []byte

	// Modified is the modified file content.
	Modified []byte

	// Hunks contains the diff hunks.
	Hunks []Hunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// Hunk represents a single hunk in a unified diff.
type Hunk struct {
	// OriginalStart is the 1-based line number where the hunk starts in the original.
	OriginalStart int

	// OriginalCount is the number of lines from the original in this hunk.
	OriginalCount int

	// ModifiedStart is the 1-based line number where the hunk starts in the modified.
	ModifiedStart int

	// ModifiedCount is the number of lines from the modified in this hunk.
	ModifiedCount int

	// Lines contains the diff lines in this hunk.
	Lines []Line
}

// Line represents a single line in a diff hunk.
type Line struct {
	// Kind indicates whether this is a context, add, or remove line.
	Kind LineKind

	// Content is the line content including its line terminator.
	Content string
}

// LineKind indicates the type of diff line.
type LineKind int

const (
	// LineContext is an unchanged context line.
	LineContext LineKind = iota

	// LineAdd is a line added in the modified version.
	LineAdd

	// LineRemove is a line removed from the original version.
	LineRemove
)

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// Generate creates a unified diff between original and modified content.
// Lines are compared together with their terminators, so a change of
// line ending alone shows up as a change.
// Returns nil if there are no changes.
func Generate(path string, original, modified []byte) *Diff {
	if string(original) == string(modified) {
		return nil
	}

	origLines := SplitLines(string(original))
	modLines := SplitLines(string(modified))

	hunks := computeHunks(origLines, modLines)
	if len(hunks) == 0 {
		return nil
	}

	var additions, deletions int
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineAdd:
				additions++
			case LineRemove:
				deletions++
			}
		}
	}

	return &Diff{
		Path:      path,
		Original:  original,
		Modified:  modified,
		Hunks:     hunks,
		Additions: additions,
		Deletions: deletions,
	}
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified diff format (without the git header).
// Carriage returns are shown as a visible `\r`.
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			builder.WriteString(line.Kind.prefix())
			builder.WriteString(Visible(line.Content))
			builder.WriteByte('\n')
			if !strings.HasSuffix(line.Content, "\n") && !strings.HasSuffix(line.Content, "\r") {
				builder.WriteString("\\ No newline at end of file\n")
			}
		}
	}

	return builder.String()
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

func (k LineKind) prefix() string {
	switch k {
	case LineAdd:
		return "+"
	case LineRemove:
		return "-"
	default:
		return " "
	}
}

// Visible strips the trailing LF of a line and escapes carriage returns.
func Visible(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.ReplaceAll(line, "\r", `\r`)
}

// SplitLines splits content after every LF, CRLF or lone CR, keeping
// the terminators.
func SplitLines(content string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				i++
			}
		case '\n':
		default:
			continue
		}
		lines = append(lines, content[start:i+1])
		start = i + 1
	}
	if start < len(content) {
		lines = append(lines, content[start:])
	}
	return lines
}

// computeHunks computes diff hunks from the line alignment.
func computeHunks(orig, mod []string) []Hunk {
	var ops []diffOp
	for _, op := range Align(orig, mod) {
		switch op.Kind {
		case OpKeep:
			ops = append(ops, diffOp{kind: LineContext, content: orig[op.OrigIdx]})
		case OpDelete:
			ops = append(ops, diffOp{kind: LineRemove, content: orig[op.OrigIdx]})
		case OpInsert:
			ops = append(ops, diffOp{kind: LineAdd, content: mod[op.ModIdx]})
		}
	}
	if len(ops) == 0 {
		return nil
	}

	return groupIntoHunks(ops)
}

// diffOp represents a single diff operation.
type diffOp struct {
	kind    LineKind
	content string
}

// groupIntoHunks merges nearby changes into hunks with context.
func groupIntoHunks(ops []diffOp) []Hunk {
	type changeRange struct {
		start, end int // Indices into ops.
	}

	var ranges []changeRange
	inChange := false
	rangeStart := 0

	for opIdx, op := range ops {
		isChange := op.kind != LineContext
		if isChange && !inChange {
			rangeStart = opIdx
			inChange = true
		} else if !isChange && inChange {
			ranges = append(ranges, changeRange{rangeStart, opIdx})
			inChange = false
		}
	}
	if inChange {
		ranges = append(ranges, changeRange{rangeStart, len(ops)})
	}

	var hunks []Hunk
	for rangeIdx := 0; rangeIdx < len(ranges); {
		mergeEnd := rangeIdx + 1
		for mergeEnd < len(ranges) {
			gap := ranges[mergeEnd].start - ranges[mergeEnd-1].end
			if gap > contextLines*2 {
				break
			}
			mergeEnd++
		}

		hunk := buildHunk(ops, ranges[rangeIdx].start, ranges[mergeEnd-1].end)
		if len(hunk.Lines) > 0 {
			hunks = append(hunks, hunk)
		}

		rangeIdx = mergeEnd
	}

	return hunks
}

// buildHunk builds a single hunk from a range of operations.
func buildHunk(ops []diffOp, changeStart, changeEnd int) Hunk {
	start := max(changeStart-contextLines, 0)
	end := min(changeEnd+contextLines, len(ops))

	hunk := Hunk{OriginalStart: 1, ModifiedStart: 1}
	for opIdx := range start {
		if ops[opIdx].kind != LineAdd {
			hunk.OriginalStart++
		}
		if ops[opIdx].kind != LineRemove {
			hunk.ModifiedStart++
		}
	}

	for i := start; i < end; i++ {
		op := ops[i]
		hunk.Lines = append(hunk.Lines, Line{Kind: op.kind, Content: op.content})

		switch op.kind {
		case LineContext:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case LineRemove:
			hunk.OriginalCount++
		case LineAdd:
			hunk.ModifiedCount++
		}
	}

	return hunk
}
