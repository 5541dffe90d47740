package lexical

import (
	"strings"

	"github.com/yaklabco/lexkeep/pkg/syntax"
)

// Part is one piece of a canonical layout: literal text or a child
// placed at an indentation.
type Part struct {
	// Text is literal text. Line breaks are written as "\n" and are
	// converted to the session line ending.
	Text string

	// Child is the child placed at this position, nil for text parts.
	Child *syntax.Node

	// Indent is the indentation of the line on which Child starts.
	Indent string
}

// DefaultPrinter renders nodes that have no original text.
//
// Layout must list every child of n exactly once, in order. indent is
// the indentation of the line n starts on; literal text following a
// line break must carry its own indentation.
type DefaultPrinter interface {
	Layout(n *syntax.Node, indent string) ([]Part, error)

	// Separator is the canonical text between two children of parent.
	Separator(parent *syntax.Node) string

	// ChildIndent is the indentation n adds for lines of its children,
	// e.g. four spaces for a block body or "> " for a quote.
	ChildIndent(n *syntax.Node) string
}

// PlainPrinter is the fallback DefaultPrinter: a leaf prints its text
// property and children are joined by a single space.
type PlainPrinter struct{}

// Layout implements DefaultPrinter.
func (PlainPrinter) Layout(n *syntax.Node, indent string) ([]Part, error) {
	if !n.HasChildren() {
		return []Part{{Text: n.Prop(syntax.PropText)}}, nil
	}
	var parts []Part
	for child := n.FirstChild; child != nil; child = child.Next {
		if child != n.FirstChild {
			parts = append(parts, Part{Text: " "})
		}
		parts = append(parts, Part{Child: child, Indent: indent})
	}
	return parts, nil
}

// Separator implements DefaultPrinter.
func (PlainPrinter) Separator(*syntax.Node) string { return " " }

// ChildIndent implements DefaultPrinter.
func (PlainPrinter) ChildIndent(*syntax.Node) string { return "" }

// Print returns the current text of node and its subtree. Nodes without
// NodeText are rendered transiently with the DefaultPrinter; Print never
// changes session state.
func (s *Session) Print(node *syntax.Node) (string, error) {
	if node == nil {
		return "", syntax.ErrNilNode
	}

	var b strings.Builder
	scratch := make(map[*syntax.Node]NodeText)
	if err := s.print(&b, node, scratch); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Session) print(b *strings.Builder, node *syntax.Node, scratch map[*syntax.Node]NodeText) error {
	nt, ok := s.lookup(node, scratch)
	if !ok {
		var err error
		nt, err = s.synthesize(node, s.lineIndent(node), scratch)
		if err != nil {
			return err
		}
	}

	for _, el := range nt {
		if el.IsLiteral() {
			b.WriteString(el.Text)
			continue
		}
		if el.Child.Parent != node {
			return &InconsistentOwnershipError{Node: el.Child, Reason: "referenced by " + node.Kind + " but parented elsewhere"}
		}
		if err := s.print(b, el.Child, scratch); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) lookup(node *syntax.Node, scratch map[*syntax.Node]NodeText) (NodeText, bool) {
	if nt, ok := s.texts[node]; ok {
		return nt, true
	}
	nt, ok := scratch[node]
	return nt, ok
}
