package syntax

// PropText is the property holding the literal text of a leaf node.
const PropText = "text"

// Node is a single node of a concrete syntax tree.
// Nodes form a tree through parent, child and sibling links.
type Node struct {
	// Kind is the grammar production name, e.g. "class_body".
	Kind string

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Range is the byte span of the node in Tree.Content.
	// It is NoRange for nodes created after parsing.
	Range SourceRange

	// Props holds grammar-specific attributes such as a leaf's text,
	// a heading level or a list marker.
	Props map[string]string

	// Tree is a back-reference to the owning tree. It is nil while the
	// node is detached.
	Tree *Tree
}

// NewNode creates a detached node of the given kind with no source range.
func NewNode(kind string) *Node {
	return &Node{
		Kind:  kind,
		Range: NoRange,
	}
}

// NewLeaf creates a detached leaf node carrying text.
func NewLeaf(kind, text string) *Node {
	n := NewNode(kind)
	n.Props = map[string]string{PropText: text}
	return n
}

// Prop returns the value of a property, or "" when unset.
func (n *Node) Prop(name string) string {
	if n == nil || n.Props == nil {
		return ""
	}
	return n.Props[name]
}

// HasProp reports whether the property is set.
func (n *Node) HasProp(name string) bool {
	if n == nil || n.Props == nil {
		return false
	}
	_, ok := n.Props[name]
	return ok
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// ChildAt returns the child at index, or nil when out of range.
func (n *Node) ChildAt(index int) *Node {
	if index < 0 {
		return nil
	}
	child := n.FirstChild
	for ; child != nil && index > 0; child = child.Next {
		index--
	}
	return child
}

// Index returns the position of n among its siblings, or -1 if detached.
func (n *Node) Index() int {
	if n.Parent == nil {
		return -1
	}
	idx := 0
	for prev := n.Prev; prev != nil; prev = prev.Prev {
		idx++
	}
	return idx
}

// Root returns the topmost ancestor of n.
func (n *Node) Root() *Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// IsAncestorOf reports whether n is other or one of its ancestors.
func (n *Node) IsAncestorOf(other *Node) bool {
	for cur := other; cur != nil; cur = cur.Parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Text returns the source text of the node when it still has a valid
// range inside its tree, and the text property otherwise.
func (n *Node) Text() string {
	if n.Tree != nil && n.Range.IsValid() && n.Range.EndOffset <= len(n.Tree.Content) {
		return string(n.Tree.Content[n.Range.StartOffset:n.Range.EndOffset])
	}
	return n.Prop(PropText)
}
