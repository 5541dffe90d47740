// Package syntax provides the concrete syntax tree used by lexkeep.
// It defines:
// - Tree: the parsed file (path, content, line index, root node)
// - Node: grammar-neutral nodes addressed by kind and source range
// - mutation functions that notify registered observers after each change
package syntax

// Tree is a parsed document together with its raw content.
type Tree struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Language names the grammar that produced the tree, e.g. "java".
	Language string

	// Content is the full file bytes the tree was parsed from.
	Content []byte

	// Lines contains metadata for each line in Content.
	Lines []LineInfo

	// Root is the single root node.
	Root *Node

	observers []Observer
}

// NewTree creates a tree over content and attaches root and its
// descendants to it.
func NewTree(path string, content []byte, root *Node) *Tree {
	tree := &Tree{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
		Root:    root,
	}
	if root != nil {
		root.Parent = nil
		root.Prev = nil
		root.Next = nil
		setTree(root, tree)
	}
	return tree
}

// AddObserver registers an observer for changes to nodes of the tree.
// It returns false when the observer is already registered.
// Observers must be comparable.
func (t *Tree) AddObserver(obs Observer) bool {
	if obs == nil {
		return false
	}
	for _, existing := range t.observers {
		if existing == obs {
			return false
		}
	}
	t.observers = append(t.observers, obs)
	return true
}

// RemoveObserver unregisters an observer. It reports whether it was registered.
func (t *Tree) RemoveObserver(obs Observer) bool {
	for i, existing := range t.observers {
		if existing == obs {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return true
		}
	}
	return false
}

// Observers returns the registered observers in registration order.
func (t *Tree) Observers() []Observer {
	out := make([]Observer, len(t.observers))
	copy(out, t.observers)
	return out
}

func (t *Tree) notify(change Change) {
	if t == nil {
		return
	}
	for _, obs := range t.Observers() {
		obs.NodeChanged(change)
	}
}

// setTree sets the tree back-reference for a node and all its descendants.
func setTree(node *Node, tree *Tree) {
	//nolint:errcheck // the callback never fails
	Walk(node, func(child *Node) error {
		child.Tree = tree
		return nil
	})
}
