package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lexkeep/pkg/syntax"
)

type recorder struct {
	changes []syntax.Change
}

func (r *recorder) NodeChanged(change syntax.Change) {
	r.changes = append(r.changes, change)
}

func kinds(nodes []*syntax.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Kind)
	}
	return out
}

func newTree(t *testing.T) (*syntax.Tree, *syntax.Node, *recorder) {
	t.Helper()

	root := syntax.NewNode("root")
	for _, kind := range []string{"a", "b", "c"} {
		require.NoError(t, syntax.AppendChild(root, syntax.NewNode(kind)))
	}

	tree := syntax.NewTree("mem", []byte("abc"), root)
	rec := &recorder{}
	require.True(t, tree.AddObserver(rec))

	return tree, root, rec
}

func TestInsertChild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		index int
		want  []string
	}{
		{name: "first", index: 0, want: []string{"x", "a", "b", "c"}},
		{name: "middle", index: 2, want: []string{"a", "b", "x", "c"}},
		{name: "last", index: 3, want: []string{"a", "b", "c", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree, root, rec := newTree(t)
			child := syntax.NewNode("x")

			require.NoError(t, syntax.InsertChild(root, tt.index, child))

			assert.Equal(t, tt.want, kinds(root.Children()))
			assert.Same(t, tree, child.Tree)
			assert.Equal(t, tt.index, child.Index())
			require.Len(t, rec.changes, 1)
			assert.Equal(t, syntax.ChangeInsert, rec.changes[0].Kind)
			assert.Same(t, root, rec.changes[0].Node)
			assert.Same(t, child, rec.changes[0].Child)
			assert.Equal(t, tt.index, rec.changes[0].Index)
		})
	}
}

func TestInsertChild_Errors(t *testing.T) {
	t.Parallel()

	_, root, rec := newTree(t)

	err := syntax.InsertChild(root, 7, syntax.NewNode("x"))
	require.ErrorIs(t, err, syntax.ErrIndexOutOfRange)

	err = syntax.InsertChild(root.FirstChild, 0, root)
	require.ErrorIs(t, err, syntax.ErrCycle)

	require.ErrorIs(t, syntax.InsertChild(nil, 0, root), syntax.ErrNilNode)
	assert.Empty(t, rec.changes)
}

func TestInsertChild_FailedMoveKeepsTree(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		index int
	}{
		{name: "past end counted without the moved child", index: 3},
		{name: "far past end", index: 99},
		{name: "negative", index: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree, root, rec := newTree(t)
			moved := root.FirstChild

			err := syntax.InsertChild(root, tt.index, moved)
			require.ErrorIs(t, err, syntax.ErrIndexOutOfRange)

			assert.Equal(t, []string{"a", "b", "c"}, kinds(root.Children()))
			assert.Same(t, root, moved.Parent)
			assert.Same(t, tree, moved.Tree)
			assert.Empty(t, rec.changes)
		})
	}

	_, root, _ := newTree(t)
	require.NoError(t, syntax.InsertChild(root, 2, root.FirstChild))
	assert.Equal(t, []string{"b", "c", "a"}, kinds(root.Children()))
}

func TestInsertBeforeAfter_CycleKeepsTree(t *testing.T) {
	t.Parallel()

	tree, root, rec := newTree(t)
	outer := root.ChildAt(1)
	inner := syntax.NewNode("inner")
	require.NoError(t, syntax.AppendChild(outer, inner))
	rec.changes = nil

	require.ErrorIs(t, syntax.InsertBefore(inner, outer), syntax.ErrCycle)
	require.ErrorIs(t, syntax.InsertAfter(inner, outer), syntax.ErrCycle)

	assert.Equal(t, []string{"a", "b", "c"}, kinds(root.Children()))
	assert.Same(t, root, outer.Parent)
	assert.Same(t, tree, outer.Tree)
	assert.Same(t, outer, inner.Parent)
	assert.Empty(t, rec.changes)
}

func TestInsertChild_MovesBetweenParents(t *testing.T) {
	t.Parallel()

	_, root, rec := newTree(t)
	target := root.ChildAt(0)
	moved := root.ChildAt(2)

	require.NoError(t, syntax.AppendChild(target, moved))

	assert.Equal(t, []string{"a", "b"}, kinds(root.Children()))
	assert.Equal(t, []string{"c"}, kinds(target.Children()))
	require.Len(t, rec.changes, 2)
	assert.Equal(t, syntax.ChangeRemove, rec.changes[0].Kind)
	assert.Same(t, root, rec.changes[0].Node)
	assert.Equal(t, syntax.ChangeInsert, rec.changes[1].Kind)
	assert.Same(t, target, rec.changes[1].Node)
	assert.NotNil(t, moved.Tree)
}

func TestRemoveChild(t *testing.T) {
	t.Parallel()

	_, root, rec := newTree(t)
	removed := root.ChildAt(1)

	require.NoError(t, syntax.RemoveChild(root, removed))

	assert.Equal(t, []string{"a", "c"}, kinds(root.Children()))
	assert.Nil(t, removed.Parent)
	assert.Nil(t, removed.Tree)
	require.Len(t, rec.changes, 1)
	assert.Equal(t, syntax.ChangeRemove, rec.changes[0].Kind)
	assert.Equal(t, 1, rec.changes[0].Index)
	assert.Same(t, removed, rec.changes[0].Old)

	require.ErrorIs(t, syntax.RemoveChild(root, removed), syntax.ErrNotChild)
}

func TestRemoveChildAt(t *testing.T) {
	t.Parallel()

	_, root, _ := newTree(t)

	removed, err := syntax.RemoveChildAt(root, 2)
	require.NoError(t, err)
	assert.Equal(t, "c", removed.Kind)
	assert.Same(t, root.ChildAt(1), root.LastChild)

	_, err = syntax.RemoveChildAt(root, 5)
	require.ErrorIs(t, err, syntax.ErrIndexOutOfRange)
}

func TestReplaceChild(t *testing.T) {
	t.Parallel()

	tree, root, rec := newTree(t)
	old := root.ChildAt(1)
	repl := syntax.NewNode("y")

	require.NoError(t, syntax.ReplaceChild(root, old, repl))

	assert.Equal(t, []string{"a", "y", "c"}, kinds(root.Children()))
	assert.Same(t, tree, repl.Tree)
	assert.Nil(t, old.Tree)
	require.Len(t, rec.changes, 1)
	change := rec.changes[0]
	assert.Equal(t, syntax.ChangeReplace, change.Kind)
	assert.Equal(t, 1, change.Index)
	assert.Same(t, old, change.Old)
	assert.Same(t, repl, change.Child)
}

func TestInsertBeforeAfter(t *testing.T) {
	t.Parallel()

	_, root, rec := newTree(t)

	require.NoError(t, syntax.InsertBefore(root.ChildAt(0), syntax.NewNode("x")))
	require.NoError(t, syntax.InsertAfter(root.LastChild, syntax.NewNode("z")))
	require.NoError(t, syntax.InsertAfter(root.ChildAt(0), root.LastChild))

	assert.Equal(t, []string{"x", "z", "a", "b", "c"}, kinds(root.Children()))
	assert.Len(t, rec.changes, 4)

	require.ErrorIs(t, syntax.InsertBefore(syntax.NewNode("q"), syntax.NewNode("r")), syntax.ErrNotChild)
}

func TestSetProp(t *testing.T) {
	t.Parallel()

	_, root, rec := newTree(t)
	leaf := root.ChildAt(0)

	require.NoError(t, syntax.SetProp(leaf, syntax.PropText, "hello"))
	require.NoError(t, syntax.SetProp(leaf, syntax.PropText, "hello"))

	assert.Equal(t, "hello", leaf.Prop(syntax.PropText))
	require.Len(t, rec.changes, 1)
	assert.Equal(t, syntax.ChangeSetProp, rec.changes[0].Kind)
	assert.Equal(t, "", rec.changes[0].OldValue)
	assert.Equal(t, "hello", rec.changes[0].NewValue)
}

func TestDetachedMutationsAreSilent(t *testing.T) {
	t.Parallel()

	_, _, rec := newTree(t)

	orphan := syntax.NewNode("orphan")
	require.NoError(t, syntax.AppendChild(orphan, syntax.NewLeaf("leaf", "x")))
	require.NoError(t, syntax.SetProp(orphan, "k", "v"))

	assert.Empty(t, rec.changes)
}

func TestObserverRegistration(t *testing.T) {
	t.Parallel()

	tree, _, rec := newTree(t)

	assert.False(t, tree.AddObserver(rec), "duplicate registration")
	assert.Len(t, tree.Observers(), 1)
	assert.True(t, tree.RemoveObserver(rec))
	assert.False(t, tree.RemoveObserver(rec))
	assert.Empty(t, tree.Observers())
}

func TestChangeKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "insert", syntax.ChangeInsert.String())
	assert.Equal(t, "remove", syntax.ChangeRemove.String())
	assert.Equal(t, "replace", syntax.ChangeReplace.String())
	assert.Equal(t, "set", syntax.ChangeSetProp.String())
	assert.Equal(t, "ChangeKind(9)", syntax.ChangeKind(9).String())
}
