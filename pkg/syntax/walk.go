package syntax

import "errors"

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// SkipChildren may be returned by a WalkFunc to skip the node's children.
var SkipChildren = errors.New("skip children")

// Walk performs a pre-order traversal starting at root.
// If walkFunc returns a non-nil error other than SkipChildren,
// the walk stops immediately and returns that error.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}

	for child := root.FirstChild; child != nil; {
		next := child.Next
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
		child = next
	}

	return nil
}

// errStopWalk is a sentinel used internally by FindFirst.
var errStopWalk = errors.New("stop walk")

// FindAll returns all nodes matching the predicate in pre-order.
func FindAll(root *Node, pred func(*Node) bool) []*Node {
	var out []*Node
	//nolint:errcheck // the callback never fails
	Walk(root, func(n *Node) error {
		if pred(n) {
			out = append(out, n)
		}
		return nil
	})
	return out
}

// FindFirst returns the first node in pre-order matching the predicate.
func FindFirst(root *Node, pred func(*Node) bool) *Node {
	var found *Node
	//nolint:errcheck // errStopWalk is expected
	Walk(root, func(n *Node) error {
		if pred(n) {
			found = n
			return errStopWalk
		}
		return nil
	})
	return found
}

// FindByKind returns all descendants (and root itself) of a kind.
func FindByKind(root *Node, kind string) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == kind })
}
