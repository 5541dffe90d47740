package goldmark

import (
	"github.com/yaklabco/lexkeep/pkg/syntax"
)

// sanitize removes children whose ranges are invalid, fall outside
// outer, or overlap an earlier sibling. A removed node's text stays part
// of its parent.
func sanitize(node *syntax.Node, outer syntax.SourceRange) {
	cursor := outer.StartOffset
	for child := node.FirstChild; child != nil; {
		next := child.Next
		r := child.Range
		if !r.IsValid() || r.StartOffset < cursor || !outer.Covers(r) {
			// Detached trees have no observers; removal cannot fail.
			_ = syntax.RemoveChild(node, child)
			child = next
			continue
		}
		sanitize(child, r)
		cursor = r.EndOffset
		child = next
	}
}
