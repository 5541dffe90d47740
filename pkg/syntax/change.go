package syntax

import "fmt"

// ChangeKind classifies a structural or property change.
type ChangeKind int

// Change kinds delivered to observers.
const (
	// ChangeInsert: Child was inserted into Node at Index.
	ChangeInsert ChangeKind = iota
	// ChangeRemove: Old was removed from Node at Index.
	ChangeRemove
	// ChangeReplace: Old at Index was replaced by Child.
	ChangeReplace
	// ChangeSetProp: property Prop of Node went from OldValue to NewValue.
	ChangeSetProp
)

// String returns the change kind name.
func (k ChangeKind) String() string {
	switch k {
	case ChangeInsert:
		return "insert"
	case ChangeRemove:
		return "remove"
	case ChangeReplace:
		return "replace"
	case ChangeSetProp:
		return "set"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// Change describes a mutation that has already been applied.
type Change struct {
	Kind ChangeKind

	// Node is the mutated node: the parent for structural changes,
	// the property owner for ChangeSetProp.
	Node *Node

	// Index is the child position affected by a structural change.
	Index int

	// Child is the inserted or replacement child.
	Child *Node

	// Old is the removed or replaced child.
	Old *Node

	// Property change details. HadOld is false when the property was
	// not set before.
	Prop     string
	OldValue string
	NewValue string
	HadOld   bool
}

// Observer receives changes synchronously, after they take effect.
type Observer interface {
	NodeChanged(change Change)
}
