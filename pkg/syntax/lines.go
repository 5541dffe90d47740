package syntax

import "sort"

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// BuildLines constructs line metadata from file content.
// It recognizes LF, CRLF and lone CR line breaks.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx := 0; idx < len(content); idx++ {
		var end int
		switch content[idx] {
		case '\n':
			end = idx + 1
		case '\r':
			end = idx + 1
			if idx+1 < len(content) && content[idx+1] == '\n' {
				end = idx + 2
			}
		default:
			continue
		}

		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: idx,
			EndOffset:    end,
		})
		lineStart = end
		idx = end - 1
	}

	// Handle last line (may not have trailing newline).
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineCount returns the number of lines in the tree's content.
func (t *Tree) LineCount() int {
	return len(t.Lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is out of range.
func (t *Tree) LineAt(offset int) (int, int) {
	if offset < 0 || len(t.Lines) == 0 {
		return 0, 0
	}

	if offset >= len(t.Content) {
		lastLine := t.Lines[len(t.Lines)-1]
		return len(t.Lines), offset - lastLine.StartOffset + 1
	}

	lineIdx := sort.Search(len(t.Lines), func(i int) bool {
		return t.Lines[i].EndOffset > offset
	})

	if lineIdx >= len(t.Lines) {
		lineIdx = len(t.Lines) - 1
	}

	lineInfo := t.Lines[lineIdx]
	if offset < lineInfo.StartOffset {
		return 0, 0
	}

	return lineIdx + 1, offset - lineInfo.StartOffset + 1
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (t *Tree) LineContent(line int) []byte {
	if line < 1 || line > len(t.Lines) {
		return nil
	}

	lineInfo := t.Lines[line-1]
	return t.Content[lineInfo.StartOffset:lineInfo.NewlineStart]
}
