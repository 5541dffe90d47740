package lexical

import (
	"fmt"

	"github.com/yaklabco/lexkeep/pkg/eol"
	"github.com/yaklabco/lexkeep/pkg/syntax"
)

// synthesize lays out node with the DefaultPrinter and writes the result
// to out. Children that already have NodeText keep it; the others are
// synthesized recursively at the indentation the layout gives them.
func (s *Session) synthesize(node *syntax.Node, indent string, out map[*syntax.Node]NodeText) (NodeText, error) {
	parts, err := s.printer.Layout(node, indent)
	if err != nil {
		return nil, &UntrackedNodeError{Kind: node.Kind, Err: err}
	}
	if err := checkLayout(node, parts); err != nil {
		return nil, &UntrackedNodeError{Kind: node.Kind, Err: err}
	}

	nt := make(NodeText, 0, len(parts))
	for _, part := range parts {
		if part.Child == nil {
			if part.Text != "" {
				nt = append(nt, Literal(eol.Normalize(part.Text, s.lineEnding)))
			}
			continue
		}

		nt = append(nt, ChildRef(part.Child))
		if _, ok := s.lookup(part.Child, out); ok {
			continue
		}
		if _, err := s.synthesize(part.Child, part.Indent, out); err != nil {
			return nil, err
		}
	}

	nt = mergeLiterals(nt)
	out[node] = nt
	return nt, nil
}

// ensure gives node a NodeText if it has none.
func (s *Session) ensure(node *syntax.Node, indent string) error {
	if _, ok := s.texts[node]; ok {
		return nil
	}
	_, err := s.synthesize(node, indent, s.texts)
	return err
}

func checkLayout(node *syntax.Node, parts []Part) error {
	child := node.FirstChild
	for _, part := range parts {
		if part.Child == nil {
			continue
		}
		if part.Child != child {
			return fmt.Errorf("layout places %s out of order", part.Child.Kind)
		}
		child = child.Next
	}
	if child != nil {
		return fmt.Errorf("layout omits child %s", child.Kind)
	}
	return nil
}

func mergeLiterals(nt NodeText) NodeText {
	out := nt[:0]
	for _, el := range nt {
		if el.IsLiteral() && len(out) > 0 && out[len(out)-1].IsLiteral() {
			out[len(out)-1].Text += el.Text
			continue
		}
		out = append(out, el)
	}
	return out
}
