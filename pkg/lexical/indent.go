package lexical

import (
	"slices"
	"strings"

	"github.com/yaklabco/lexkeep/pkg/eol"
	"github.com/yaklabco/lexkeep/pkg/syntax"
)

// canonicalIndent is the indentation for children of parent: the child
// indentation of every node from the root down to parent, concatenated.
func (s *Session) canonicalIndent(parent *syntax.Node) string {
	var levels []string
	for n := parent; n != nil; n = n.Parent {
		levels = append(levels, s.printer.ChildIndent(n))
	}
	slices.Reverse(levels)
	return strings.Join(levels, "")
}

// lineIndent returns the leading whitespace of the line on which node
// currently starts.
func (s *Session) lineIndent(node *syntax.Node) string {
	prefix := ""

	for cur := node; cur.Parent != nil; cur = cur.Parent {
		nt, ok := s.texts[cur.Parent]
		if !ok {
			return s.canonicalIndent(cur.Parent)
		}
		before, found := s.textBefore(nt, cur)
		if !found {
			return s.canonicalIndent(cur.Parent)
		}
		prefix = before + prefix
		if idx := eol.LastBreak(prefix); idx >= 0 {
			return leadingBlank(prefix[idx:])
		}
	}

	return leadingBlank(prefix)
}

// textBefore returns the text in nt preceding the reference to child,
// scanning backwards only as far as the nearest line break.
func (s *Session) textBefore(nt NodeText, child *syntax.Node) (string, bool) {
	pos := -1
	for i, el := range nt {
		if el.Child == child {
			pos = i
			break
		}
	}
	if pos < 0 {
		return "", false
	}

	text := ""
	for i := pos - 1; i >= 0; i-- {
		el := nt[i]
		piece := el.Text
		if !el.IsLiteral() {
			printed, err := s.Print(el.Child)
			if err != nil {
				return text, true
			}
			piece = printed
		}
		text = piece + text
		if eol.HasBreak(piece) {
			break
		}
	}
	return text, true
}

// gapIndent returns the whitespace following the last line break of gap.
func gapIndent(gap string) (string, bool) {
	idx := eol.LastBreak(gap)
	if idx < 0 {
		return "", false
	}
	return leadingBlank(gap[idx:]), true
}

func leadingBlank(text string) string {
	end := 0
	for end < len(text) && (text[end] == ' ' || text[end] == '\t') {
		end++
	}
	return text[:end]
}

// trimLineTail removes trailing blanks and one trailing line break.
func trimLineTail(gap string) string {
	trimmed := strings.TrimRight(gap, " \t")
	switch {
	case strings.HasSuffix(trimmed, "\r\n"):
		return trimmed[:len(trimmed)-2]
	case strings.HasSuffix(trimmed, "\n"), strings.HasSuffix(trimmed, "\r"):
		return trimmed[:len(trimmed)-1]
	default:
		return gap
	}
}

// blockSplit returns the offset just past the first line break of gap
// and any blank lines that follow it. Text after the offset belongs to
// the next child's line.
func blockSplit(gap string) int {
	cut := eol.FirstBreak(gap)
	if cut < 0 {
		return len(gap)
	}
	for {
		rest := gap[cut:]
		next := eol.FirstBreak(rest)
		if next < 0 || strings.TrimSpace(rest[:next]) != "" {
			return cut
		}
		cut += next
	}
}
