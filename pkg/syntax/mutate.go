package syntax

import (
	"errors"
	"fmt"
)

// Mutation errors.
var (
	ErrNilNode         = errors.New("nil node")
	ErrNotChild        = errors.New("node is not a child of parent")
	ErrIndexOutOfRange = errors.New("child index out of range")
	ErrCycle           = errors.New("node cannot be inserted below itself")
)

// InsertChild inserts child into parent so that it ends up at index.
// A child that already has a parent is removed from it first; both
// steps are reported to observers. Nothing is changed when an error is
// returned.
func InsertChild(parent *Node, index int, child *Node) error {
	if parent == nil || child == nil {
		return ErrNilNode
	}
	if child.IsAncestorOf(parent) {
		return ErrCycle
	}

	// Valid positions are counted without child.
	count := parent.ChildCount()
	if child.Parent == parent {
		count--
	}
	if index < 0 || index > count {
		return fmt.Errorf("insert at %d into %s with %d children: %w",
			index, parent.Kind, count, ErrIndexOutOfRange)
	}

	if child.Parent != nil {
		if err := RemoveChild(child.Parent, child); err != nil {
			return err
		}
	}

	link(parent, parent.ChildAt(index), child)
	attach(parent, child)

	parent.Tree.notify(Change{
		Kind:  ChangeInsert,
		Node:  parent,
		Index: index,
		Child: child,
	})
	return nil
}

// AppendChild appends a child node to a parent.
func AppendChild(parent, child *Node) error {
	if parent == nil {
		return ErrNilNode
	}
	count := parent.ChildCount()
	if child != nil && child.Parent == parent {
		count--
	}
	return InsertChild(parent, count, child)
}

// PrependChild prepends a child node to a parent.
func PrependChild(parent, child *Node) error {
	return InsertChild(parent, 0, child)
}

// InsertBefore inserts newNode before sibling.
// sibling must have a parent.
func InsertBefore(sibling, newNode *Node) error {
	if sibling == nil || newNode == nil {
		return ErrNilNode
	}
	if sibling.Parent == nil {
		return ErrNotChild
	}
	if sibling == newNode {
		return nil
	}
	parent := sibling.Parent
	if newNode.IsAncestorOf(parent) {
		return ErrCycle
	}
	if newNode.Parent != nil {
		if err := RemoveChild(newNode.Parent, newNode); err != nil {
			return err
		}
	}
	return InsertChild(parent, sibling.Index(), newNode)
}

// InsertAfter inserts newNode after sibling.
// sibling must have a parent.
func InsertAfter(sibling, newNode *Node) error {
	if sibling == nil || newNode == nil {
		return ErrNilNode
	}
	if sibling.Parent == nil {
		return ErrNotChild
	}
	if sibling == newNode {
		return nil
	}
	parent := sibling.Parent
	if newNode.IsAncestorOf(parent) {
		return ErrCycle
	}
	if newNode.Parent != nil {
		if err := RemoveChild(newNode.Parent, newNode); err != nil {
			return err
		}
	}
	return InsertChild(parent, sibling.Index()+1, newNode)
}

// RemoveChild removes a child from its parent.
func RemoveChild(parent, child *Node) error {
	if parent == nil || child == nil {
		return ErrNilNode
	}
	if child.Parent != parent {
		return ErrNotChild
	}

	index := child.Index()
	unlink(parent, child)
	tree := parent.Tree
	setTree(child, nil)

	tree.notify(Change{
		Kind:  ChangeRemove,
		Node:  parent,
		Index: index,
		Old:   child,
	})
	return nil
}

// RemoveChildAt removes the child at index and returns it.
func RemoveChildAt(parent *Node, index int) (*Node, error) {
	if parent == nil {
		return nil, ErrNilNode
	}
	child := parent.ChildAt(index)
	if child == nil {
		return nil, fmt.Errorf("remove at %d from %s: %w", index, parent.Kind, ErrIndexOutOfRange)
	}
	return child, RemoveChild(parent, child)
}

// ReplaceChild replaces oldChild with newChild in the tree.
func ReplaceChild(parent, oldChild, newChild *Node) error {
	if parent == nil || oldChild == nil || newChild == nil {
		return ErrNilNode
	}
	if oldChild.Parent != parent {
		return ErrNotChild
	}
	if oldChild == newChild {
		return nil
	}
	if newChild.IsAncestorOf(parent) {
		return ErrCycle
	}

	if newChild.Parent != nil {
		if err := RemoveChild(newChild.Parent, newChild); err != nil {
			return err
		}
	}

	index := oldChild.Index()
	next := oldChild.Next
	unlink(parent, oldChild)
	setTree(oldChild, nil)
	link(parent, next, newChild)
	attach(parent, newChild)

	parent.Tree.notify(Change{
		Kind:  ChangeReplace,
		Node:  parent,
		Index: index,
		Child: newChild,
		Old:   oldChild,
	})
	return nil
}

// SetProp sets a property on a node and reports the change.
// Setting a property to its current value is a no-op.
func SetProp(node *Node, name, value string) error {
	if node == nil {
		return ErrNilNode
	}
	old, had := node.Props[name]
	if had && old == value {
		return nil
	}
	if node.Props == nil {
		node.Props = make(map[string]string)
	}
	node.Props[name] = value

	node.Tree.notify(Change{
		Kind:     ChangeSetProp,
		Node:     node,
		Prop:     name,
		OldValue: old,
		NewValue: value,
		HadOld:   had,
	})
	return nil
}

// link places child before next (or last when next is nil).
func link(parent, next, child *Node) {
	child.Parent = parent
	child.Next = next
	if next != nil {
		child.Prev = next.Prev
		next.Prev = child
	} else {
		child.Prev = parent.LastChild
		parent.LastChild = child
	}
	if child.Prev != nil {
		child.Prev.Next = child
	} else {
		parent.FirstChild = child
	}
}

func unlink(parent, child *Node) {
	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

func attach(parent, child *Node) {
	if parent.Tree != nil {
		setTree(child, parent.Tree)
	}
}
