package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lexkeep/pkg/parser"
	"github.com/yaklabco/lexkeep/pkg/syntax"
)

type stubParser struct{ lang string }

func (s stubParser) Language() string { return s.lang }

func (s stubParser) Parse(_ context.Context, path string, content []byte) (*syntax.Tree, error) {
	tree := syntax.NewTree(path, content, syntax.NewNode("root"))
	tree.Language = s.lang
	return tree, nil
}

func TestDefault_Languages(t *testing.T) {
	t.Parallel()

	r := parser.Default("gfm")
	assert.Equal(t, []string{"go", "java", "javascript", "markdown", "python", "rust"}, r.Languages())
}

func TestForFile(t *testing.T) {
	t.Parallel()

	r := parser.Default("")

	tests := []struct {
		path string
		want string
	}{
		{"Foo.java", "java"},
		{"README.md", "markdown"},
		{"main.go", "go"},
		{"script.py", "python"},
	}
	for _, tt := range tests {
		p, err := r.ForFile(tt.path, nil)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, p.Language())
	}

	_, err := r.ForFile("notes.txt", []byte("hello"))
	require.ErrorIs(t, err, parser.ErrNoParser)
}

func TestMapExtension(t *testing.T) {
	t.Parallel()

	r := parser.NewRegistry()
	r.Register(stubParser{lang: "custom"})
	r.MapExtension("cst", "custom")

	assert.Equal(t, "custom", r.Detect("a/b.CST", nil))

	tree, err := r.Parse(context.Background(), "a/b.cst", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "custom", tree.Language)
}

func TestLookup_Unknown(t *testing.T) {
	t.Parallel()

	_, err := parser.NewRegistry().Lookup("java")
	require.ErrorIs(t, err, parser.ErrNoParser)
	assert.Contains(t, err.Error(), `"java"`)
}

func TestParse_Java(t *testing.T) {
	t.Parallel()

	r := parser.Default("")
	tree, err := r.Parse(context.Background(), "A.java", []byte("class A {}\n"))
	require.NoError(t, err)
	assert.Equal(t, "java", tree.Language)
	assert.Len(t, syntax.FindByKind(tree.Root, "class_declaration"), 1)
}
