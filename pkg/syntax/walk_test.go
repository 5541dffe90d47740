package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lexkeep/pkg/syntax"
)

func TestWalk(t *testing.T) {
	t.Parallel()

	root := syntax.NewNode("root")
	inner := syntax.NewNode("inner")
	require.NoError(t, syntax.AppendChild(root, inner))
	require.NoError(t, syntax.AppendChild(inner, syntax.NewNode("leaf")))
	require.NoError(t, syntax.AppendChild(root, syntax.NewNode("leaf")))

	var visited []string
	require.NoError(t, syntax.Walk(root, func(n *syntax.Node) error {
		visited = append(visited, n.Kind)
		return nil
	}))
	assert.Equal(t, []string{"root", "inner", "leaf", "leaf"}, visited)

	visited = nil
	require.NoError(t, syntax.Walk(root, func(n *syntax.Node) error {
		visited = append(visited, n.Kind)
		if n.Kind == "inner" {
			return syntax.SkipChildren
		}
		return nil
	}))
	assert.Equal(t, []string{"root", "inner", "leaf"}, visited)

	assert.Len(t, syntax.FindByKind(root, "leaf"), 2)
	assert.Same(t, inner.FirstChild, syntax.FindFirst(root, func(n *syntax.Node) bool { return n.Kind == "leaf" }))
	assert.Nil(t, syntax.FindFirst(root, func(n *syntax.Node) bool { return n.Kind == "none" }))
}
