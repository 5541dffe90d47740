package lexical

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/lexkeep/pkg/eol"
	"github.com/yaklabco/lexkeep/pkg/syntax"
)

// Session tracks the NodeText of every node of one tree and keeps it in
// step with mutations. A session assumes exclusive access to its tree.
type Session struct {
	tree       *syntax.Tree
	printer    DefaultPrinter
	policy     IndentPolicy
	lineEnding eol.LineEnding
	ambiguous  bool
	logger     *log.Logger

	texts map[*syntax.Node]NodeText

	// retired holds the texts of the most recently removed subtree so
	// that a remove followed by an insert (a move) keeps its text.
	retired map[*syntax.Node]NodeText

	errs []error
}

// Setup starts preserving the text of tree: it detects the line ending,
// builds the NodeText of every node and registers the session as an
// observer. Calling Setup again on the same tree returns the existing
// session.
func Setup(tree *syntax.Tree, opts Options) (*Session, error) {
	if tree == nil || tree.Root == nil {
		return nil, errors.New("setup: tree has no root")
	}

	for _, obs := range tree.Observers() {
		if existing, ok := obs.(*Session); ok {
			return existing, nil
		}
	}

	lineEnding, err := eol.Detect(string(tree.Content))
	ambiguous := false
	if err != nil {
		if opts.FallbackLineEnding == nil {
			return nil, &AmbiguousLineEndingError{Fallback: lineEnding}
		}
		lineEnding = *opts.FallbackLineEnding
		ambiguous = true
	}

	printer := opts.Printer
	if printer == nil {
		printer = PlainPrinter{}
	}

	sess := &Session{
		tree:       tree,
		printer:    printer,
		policy:     opts.Indent,
		lineEnding: lineEnding,
		ambiguous:  ambiguous,
		logger:     opts.Logger,
		texts:      make(map[*syntax.Node]NodeText),
	}

	full := syntax.SourceRange{StartOffset: 0, EndOffset: len(tree.Content)}
	if err := sess.build(tree.Root, full, tree.Root.Children(), sess.texts); err != nil {
		return nil, fmt.Errorf("setup %s: %w", tree.Path, err)
	}

	tree.AddObserver(sess)
	sess.debug("session started", "path", tree.Path, "line_ending", lineEnding, "nodes", len(sess.texts))

	return sess, nil
}

// Tree returns the tracked tree.
func (s *Session) Tree() *syntax.Tree {
	return s.tree
}

// Close unregisters the session from its tree and drops all NodeText.
func (s *Session) Close() {
	s.tree.RemoveObserver(s)
	s.texts = make(map[*syntax.Node]NodeText)
	s.retired = nil
}

// LineEnding resolves the line ending of node, which is the one detected
// for the whole tree. When the original text had no line breaks the
// fallback is returned together with *AmbiguousLineEndingError.
func (s *Session) LineEnding(node *syntax.Node) (eol.LineEnding, error) {
	if err := s.owns(node); err != nil {
		return s.lineEnding, err
	}
	if s.ambiguous {
		return s.lineEnding, &AmbiguousLineEndingError{Fallback: s.lineEnding}
	}
	return s.lineEnding, nil
}

// Text returns a copy of the NodeText of node.
func (s *Session) Text(node *syntax.Node) (NodeText, bool) {
	nt, ok := s.texts[node]
	return nt.Clone(), ok
}

// Invalidate drops the NodeText of node. The next reconciliation or
// print of node falls back to rebuilding it.
func (s *Session) Invalidate(node *syntax.Node) {
	delete(s.texts, node)
}

// Err returns the reconciliation errors recorded for mutations made
// directly through the syntax package.
func (s *Session) Err() error {
	return errors.Join(s.errs...)
}

// Insert inserts child into parent at index and returns the reconciled
// NodeText of parent.
func (s *Session) Insert(parent *syntax.Node, index int, child *syntax.Node) (NodeText, error) {
	return s.command(parent, func() error {
		return syntax.InsertChild(parent, index, child)
	})
}

// Append appends child to parent and returns the reconciled NodeText of parent.
func (s *Session) Append(parent, child *syntax.Node) (NodeText, error) {
	return s.command(parent, func() error {
		return syntax.AppendChild(parent, child)
	})
}

// Remove removes child from parent and returns the reconciled NodeText of parent.
func (s *Session) Remove(parent, child *syntax.Node) (NodeText, error) {
	return s.command(parent, func() error {
		return syntax.RemoveChild(parent, child)
	})
}

// Replace swaps oldChild for newChild and returns the reconciled NodeText of parent.
func (s *Session) Replace(parent, oldChild, newChild *syntax.Node) (NodeText, error) {
	return s.command(parent, func() error {
		return syntax.ReplaceChild(parent, oldChild, newChild)
	})
}

// Set sets a property of node and returns its reconciled NodeText.
func (s *Session) Set(node *syntax.Node, prop, value string) (NodeText, error) {
	return s.command(node, func() error {
		return syntax.SetProp(node, prop, value)
	})
}

func (s *Session) command(target *syntax.Node, mutate func() error) (NodeText, error) {
	if err := s.owns(target); err != nil {
		return nil, err
	}

	mark := len(s.errs)
	if err := mutate(); err != nil {
		return nil, err
	}
	if len(s.errs) > mark {
		return nil, errors.Join(s.errs[mark:]...)
	}

	nt, _ := s.Text(target)
	return nt, nil
}

func (s *Session) owns(node *syntax.Node) error {
	if node == nil {
		return &InconsistentOwnershipError{Reason: "nil node"}
	}
	if node.Tree != s.tree || node.Root() != s.tree.Root {
		return &InconsistentOwnershipError{Node: node, Reason: "node is not part of the session's tree"}
	}
	return nil
}

// NodeChanged implements syntax.Observer.
func (s *Session) NodeChanged(change syntax.Change) {
	if change.Node == nil || change.Node.Tree != s.tree {
		return
	}

	s.restore(change.Child)
	s.retired = nil

	err := s.reconcile(change)
	if change.Old != nil {
		s.retire(change.Old)
	}

	if err != nil {
		delete(s.texts, change.Node)
		s.errs = append(s.errs, err)
		s.warn("reconcile failed", "kind", change.Node.Kind, "change", change.Kind, "error", err)
	}
}

func (s *Session) retire(root *syntax.Node) {
	if s.retired == nil {
		s.retired = make(map[*syntax.Node]NodeText)
	}
	//nolint:errcheck // the callback never fails
	syntax.Walk(root, func(n *syntax.Node) error {
		if nt, ok := s.texts[n]; ok {
			s.retired[n] = nt
			delete(s.texts, n)
		}
		return nil
	})
}

func (s *Session) restore(root *syntax.Node) {
	if root == nil || s.retired == nil {
		return
	}
	if _, ok := s.retired[root]; !ok {
		return
	}
	//nolint:errcheck // the callback never fails
	syntax.Walk(root, func(n *syntax.Node) error {
		if nt, ok := s.retired[n]; ok {
			s.texts[n] = nt
		}
		return nil
	})
	s.debug("restored moved subtree", "kind", root.Kind)
}

func (s *Session) debug(msg string, keyvals ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, keyvals...)
	}
}

func (s *Session) warn(msg string, keyvals ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, keyvals...)
	}
}
