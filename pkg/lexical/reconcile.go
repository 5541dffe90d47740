package lexical

import (
	"slices"
	"strings"

	"github.com/yaklabco/lexkeep/pkg/eol"
	"github.com/yaklabco/lexkeep/pkg/syntax"
	"github.com/yaklabco/lexkeep/pkg/textdiff"
)

// reconcile updates the NodeText of change.Node after change took effect.
func (s *Session) reconcile(change syntax.Change) error {
	node := change.Node

	old, ok := s.texts[node]
	if !ok {
		base, err := s.baseline(node, change)
		if err != nil {
			return err
		}
		if base == nil {
			return nil
		}
		old = base
	}

	var (
		nt  NodeText
		err error
	)
	if change.Kind == syntax.ChangeSetProp {
		nt, err = s.reconcileProp(node, old, change)
	} else {
		nt, err = s.reconcileChildren(node, old)
	}
	if err != nil {
		return err
	}

	s.texts[node] = nt
	s.debug("reconciled", "kind", node.Kind, "change", change.Kind, "text", nt)
	return nil
}

// replacement pairs a removed item with the child taking its slot.
type replacement struct {
	origIdx int
	child   *syntax.Node
}

// reconcileChildren aligns the children referenced by old with the
// current children of node and edits the literal gaps around the
// inserted, removed and replaced ones.
func (s *Session) reconcileChildren(node *syntax.Node, old NodeText) (NodeText, error) {
	g := toGapped(old)
	current := node.Children()

	if len(g.items) == 0 && !eol.HasBreak(g.gaps[0]) && len(current) > 0 {
		return s.synthesize(node, s.lineIndent(node), s.texts)
	}

	var (
		replaced []replacement
		deleted  []int
		inserted []int
		dels     []int
		ins      []int
	)
	flush := func() {
		pairs := min(len(dels), len(ins))
		for i := range pairs {
			replaced = append(replaced, replacement{origIdx: dels[i], child: current[ins[i]]})
		}
		deleted = append(deleted, dels[pairs:]...)
		inserted = append(inserted, ins[pairs:]...)
		dels, ins = nil, nil
	}
	for _, op := range textdiff.Align(g.items, current) {
		switch op.Kind {
		case textdiff.OpKeep:
			flush()
		case textdiff.OpDelete:
			dels = append(dels, op.OrigIdx)
		case textdiff.OpInsert:
			ins = append(ins, op.ModIdx)
		}
	}
	flush()

	for _, r := range replaced {
		indent, ok := gapIndent(g.gaps[r.origIdx])
		if !ok {
			indent = s.canonicalIndent(node)
		}
		if err := s.ensure(r.child, indent); err != nil {
			return nil, err
		}
		g.items[r.origIdx] = r.child
	}

	for i := len(deleted) - 1; i >= 0; i-- {
		removeItem(&g, deleted[i])
	}

	for _, idx := range inserted {
		if err := s.insertItem(node, &g, idx, current[idx]); err != nil {
			return nil, err
		}
	}

	return g.nodeText(), nil
}

// removeItem drops item idx together with one adjoining separator gap.
func removeItem(g *gapped, idx int) {
	last := len(g.items) - 1
	switch {
	case idx < last:
	case idx > 0:
		g.gaps[idx] = g.gaps[idx+1]
	default:
		g.gaps[idx] = trimLineTail(g.gaps[idx]) + g.gaps[idx+1]
	}
	g.gaps = append(g.gaps[:idx+1], g.gaps[idx+2:]...)
	g.removeItem(idx)
}

// insertItem places child at idx, splitting the gap at that position.
func (s *Session) insertItem(node *syntax.Node, g *gapped, idx int, child *syntax.Node) error {
	gap := g.gaps[idx]
	hasPrev := idx > 0
	hasNext := idx < len(g.items)

	indent := s.insertIndent(node, g, idx)
	if err := s.ensure(child, indent); err != nil {
		return err
	}

	if eol.HasBreak(gap) {
		sepLine := s.lineSeparator(node)
		switch {
		case hasNext:
			cut := blockSplit(gap)
			g.splitGap(idx, gap[:cut]+indent, child, sepLine+gap[cut:])
		case hasPrev:
			g.splitGap(idx, sepLine+indent, child, gap)
		default:
			cut := eol.FirstBreak(gap)
			g.splitGap(idx, gap[:cut]+indent, child, s.lineEnding.Raw()+gap[cut:])
		}
		return nil
	}

	sep := s.inlineSeparator(node, g)
	if hasNext {
		g.splitGap(idx, gap, child, sep)
	} else {
		g.splitGap(idx, sep, child, gap)
	}
	return nil
}

func (s *Session) insertIndent(node *syntax.Node, g *gapped, idx int) string {
	if s.policy == IndentInherit {
		if idx < len(g.items) {
			if indent, ok := gapIndent(g.gaps[idx]); ok {
				return indent
			}
		}
		if idx > 0 {
			if indent, ok := gapIndent(g.gaps[idx-1]); ok {
				return indent
			}
		}
	}
	return s.canonicalIndent(node)
}

// lineSeparator is the printer's separator reduced to its line breaks.
func (s *Session) lineSeparator(node *syntax.Node) string {
	sep := strings.TrimRight(s.printer.Separator(node), " \t")
	if !eol.HasBreak(sep) {
		sep += "\n"
	}
	return eol.Normalize(sep, s.lineEnding)
}

// inlineSeparator reuses the text between the first two children when
// there is one.
func (s *Session) inlineSeparator(node *syntax.Node, g *gapped) string {
	if len(g.items) >= 2 {
		return g.gaps[1]
	}
	return eol.Normalize(s.printer.Separator(node), s.lineEnding)
}

// reconcileProp keeps old when the property does not change the node's
// canonical layout. Otherwise it edits the old value in place when it
// occurs exactly once in the node's own literals, and re-lays the node
// as a last resort.
func (s *Session) reconcileProp(node *syntax.Node, old NodeText, change syntax.Change) (NodeText, error) {
	if s.layoutIgnores(node, change) {
		return old, nil
	}

	if change.OldValue != "" && strings.Count(old.Literals(), change.OldValue) == 1 {
		nt := old.Clone()
		for i, el := range nt {
			if el.IsLiteral() && strings.Contains(el.Text, change.OldValue) {
				value := eol.Normalize(change.NewValue, s.lineEnding)
				nt[i].Text = strings.Replace(el.Text, change.OldValue, value, 1)
				return nt, nil
			}
		}
	}

	return s.synthesize(node, s.lineIndent(node), s.texts)
}

// layoutIgnores reports whether the DefaultPrinter lays node out the
// same way before and after change. The old value is put back only for
// the comparison.
func (s *Session) layoutIgnores(node *syntax.Node, change syntax.Change) bool {
	indent := s.lineIndent(node)
	after, err := s.printer.Layout(node, indent)
	if err != nil {
		return false
	}

	current := node.Props[change.Prop]
	if change.HadOld {
		node.Props[change.Prop] = change.OldValue
	} else {
		delete(node.Props, change.Prop)
	}
	before, err := s.printer.Layout(node, indent)
	node.Props[change.Prop] = current

	return err == nil && slices.Equal(before, after)
}
