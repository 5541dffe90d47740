package lexical

import (
	"github.com/yaklabco/lexkeep/pkg/syntax"
)

// build partitions rng into literal runs and references to children,
// and recursively builds the children that have no NodeText yet.
// Results are written to out.
func (s *Session) build(node *syntax.Node, rng syntax.SourceRange, children []*syntax.Node, out map[*syntax.Node]NodeText) error {
	content := s.tree.Content
	if !rng.IsValid() || rng.EndOffset > len(content) {
		return &RangeError{Node: node, Range: rng, Outer: syntax.SourceRange{StartOffset: 0, EndOffset: len(content)}}
	}

	nt := NodeText{}
	cursor := rng.StartOffset
	for _, child := range children {
		r := child.Range
		if !r.IsValid() || r.StartOffset < cursor || r.EndOffset > rng.EndOffset {
			return &RangeError{Node: child, Range: r, Outer: syntax.SourceRange{StartOffset: cursor, EndOffset: rng.EndOffset}}
		}
		if r.StartOffset > cursor {
			nt = append(nt, Literal(string(content[cursor:r.StartOffset])))
		}
		nt = append(nt, ChildRef(child))

		if _, ok := s.texts[child]; !ok {
			if err := s.build(child, r, child.Children(), out); err != nil {
				return err
			}
		}
		cursor = r.EndOffset
	}
	if cursor < rng.EndOffset {
		nt = append(nt, Literal(string(content[cursor:rng.EndOffset])))
	}

	out[node] = nt
	return nil
}

// sourceRange returns the span node had in the original content.
func (s *Session) sourceRange(node *syntax.Node) (syntax.SourceRange, bool) {
	if node == s.tree.Root {
		return syntax.SourceRange{StartOffset: 0, EndOffset: len(s.tree.Content)}, true
	}
	r := node.Range
	return r, r.IsValid() && r.EndOffset <= len(s.tree.Content)
}

// baseline recovers the NodeText node had before change when none was
// tracked. It rebuilds from the original content when the pre-change
// children all still carry their source ranges. Otherwise the node is
// synthesized in its current shape and stored, and baseline returns nil.
func (s *Session) baseline(node *syntax.Node, change syntax.Change) (NodeText, error) {
	if rng, ok := s.sourceRange(node); ok {
		scratch := make(map[*syntax.Node]NodeText)
		if err := s.build(node, rng, previousChildren(node, change), scratch); err == nil {
			base := scratch[node]
			delete(scratch, node)
			for n, nt := range scratch {
				s.texts[n] = nt
			}
			s.debug("rebuilt text from source", "kind", node.Kind)
			return base, nil
		}
	}

	if _, err := s.synthesize(node, s.lineIndent(node), s.texts); err != nil {
		return nil, err
	}
	s.debug("synthesized missing text", "kind", node.Kind)
	return nil, nil
}

// previousChildren reconstructs the children of node before change.
func previousChildren(node *syntax.Node, change syntax.Change) []*syntax.Node {
	current := node.Children()
	idx := change.Index

	switch change.Kind {
	case syntax.ChangeInsert:
		if idx >= 0 && idx < len(current) && current[idx] == change.Child {
			return append(current[:idx:idx], current[idx+1:]...)
		}
	case syntax.ChangeRemove:
		if idx >= 0 && idx <= len(current) {
			prev := make([]*syntax.Node, 0, len(current)+1)
			prev = append(prev, current[:idx]...)
			prev = append(prev, change.Old)
			return append(prev, current[idx:]...)
		}
	case syntax.ChangeReplace:
		if idx >= 0 && idx < len(current) {
			current[idx] = change.Old
		}
	case syntax.ChangeSetProp:
	}
	return current
}
