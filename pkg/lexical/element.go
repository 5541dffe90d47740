// Package lexical preserves the original text of a syntax tree across
// edits. A Session keeps, for every node, a NodeText: the node's literal
// source fragments interleaved with references to its children. When
// the tree is mutated the session reconciles only the mutated node's
// NodeText, reusing every untouched fragment verbatim and rendering new
// nodes with a DefaultPrinter.
package lexical

import (
	"strconv"
	"strings"

	"github.com/yaklabco/lexkeep/pkg/syntax"
)

// Element is one entry of a NodeText: either a literal or a child reference.
type Element struct {
	// Text is the literal text. Empty for child references.
	Text string

	// Child is the referenced child, nil for literals.
	Child *syntax.Node
}

// Literal creates a literal element.
func Literal(text string) Element {
	return Element{Text: text}
}

// ChildRef creates a reference to a child node.
func ChildRef(child *syntax.Node) Element {
	return Element{Child: child}
}

// IsLiteral reports whether the element is a literal.
func (e Element) IsLiteral() bool {
	return e.Child == nil
}

// NodeText is the ordered sequence of elements that prints a node.
type NodeText []Element

// Children returns the referenced children in order.
func (nt NodeText) Children() []*syntax.Node {
	var out []*syntax.Node
	for _, el := range nt {
		if el.Child != nil {
			out = append(out, el.Child)
		}
	}
	return out
}

// Literals concatenates the node's own literal text.
func (nt NodeText) Literals() string {
	var b strings.Builder
	for _, el := range nt {
		if el.IsLiteral() {
			b.WriteString(el.Text)
		}
	}
	return b.String()
}

// Clone returns a copy that shares no backing array with nt.
func (nt NodeText) Clone() NodeText {
	if nt == nil {
		return nil
	}
	out := make(NodeText, len(nt))
	copy(out, nt)
	return out
}

// String renders the sequence for debugging, e.g. `"{\n" <field> "\n}"`.
func (nt NodeText) String() string {
	parts := make([]string, 0, len(nt))
	for _, el := range nt {
		if el.IsLiteral() {
			parts = append(parts, strconv.Quote(el.Text))
		} else {
			parts = append(parts, "<"+el.Child.Kind+">")
		}
	}
	return strings.Join(parts, " ")
}

// gapped is a NodeText split into literal gaps around child items:
// gaps[0] items[0] gaps[1] ... items[n-1] gaps[n]. Gaps may be empty.
type gapped struct {
	gaps  []string
	items []*syntax.Node
}

func toGapped(nt NodeText) gapped {
	g := gapped{gaps: []string{""}}
	for _, el := range nt {
		if el.IsLiteral() {
			g.gaps[len(g.gaps)-1] += el.Text
			continue
		}
		g.items = append(g.items, el.Child)
		g.gaps = append(g.gaps, "")
	}
	return g
}

func (g gapped) nodeText() NodeText {
	out := make(NodeText, 0, len(g.gaps)+len(g.items))
	for i, gap := range g.gaps {
		if gap != "" {
			out = append(out, Literal(gap))
		}
		if i < len(g.items) {
			out = append(out, ChildRef(g.items[i]))
		}
	}
	return out
}

func (g *gapped) removeItem(idx int) {
	g.items = append(g.items[:idx], g.items[idx+1:]...)
}

// splitGap replaces gaps[idx] with before, child, after.
func (g *gapped) splitGap(idx int, before string, child *syntax.Node, after string) {
	gaps := make([]string, 0, len(g.gaps)+1)
	gaps = append(gaps, g.gaps[:idx]...)
	gaps = append(gaps, before, after)
	gaps = append(gaps, g.gaps[idx+1:]...)
	g.gaps = gaps

	items := make([]*syntax.Node, 0, len(g.items)+1)
	items = append(items, g.items[:idx]...)
	items = append(items, child)
	items = append(items, g.items[idx:]...)
	g.items = items
}
