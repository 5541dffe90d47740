package goldmark_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lexkeep/pkg/lexical"
	"github.com/yaklabco/lexkeep/pkg/parser/goldmark"
	"github.com/yaklabco/lexkeep/pkg/render"
	"github.com/yaklabco/lexkeep/pkg/syntax"
)

func parse(t *testing.T, flavor, content string) *syntax.Tree {
	t.Helper()
	tree, err := goldmark.New(flavor).Parse(context.Background(), "test.md", []byte(content))
	require.NoError(t, err)
	require.NotNil(t, tree)
	return tree
}

func text(tree *syntax.Tree, n *syntax.Node) string {
	return string(tree.Content[n.Range.StartOffset:n.Range.EndOffset])
}

func kinds(nodes []*syntax.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Kind)
	}
	return out
}

func TestParser_New(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		flavor     string
		wantFlavor string
	}{
		{"commonmark", goldmark.FlavorCommonMark, goldmark.FlavorCommonMark},
		{"gfm", goldmark.FlavorGFM, goldmark.FlavorGFM},
		{"invalid defaults to commonmark", "invalid", goldmark.FlavorCommonMark},
		{"empty defaults to commonmark", "", goldmark.FlavorCommonMark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := goldmark.New(tt.flavor)
			assert.Equal(t, tt.wantFlavor, p.Flavor())
			assert.Equal(t, goldmark.Language, p.Language())
		})
	}
}

func TestParse_Basic(t *testing.T) {
	t.Parallel()

	content := []byte("# Hello\n\nWorld\n")
	tree, err := goldmark.New("").Parse(context.Background(), "test.md", content)
	require.NoError(t, err)

	assert.Equal(t, "test.md", tree.Path)
	assert.Equal(t, goldmark.Language, tree.Language)
	assert.Equal(t, string(content), string(tree.Content))
	assert.NotSame(t, &content[0], &tree.Content[0])
	assert.Len(t, tree.Lines, 3)

	root := tree.Root
	assert.Equal(t, goldmark.KindDocument, root.Kind)
	assert.Same(t, tree, root.Tree)
	require.Equal(t, []string{goldmark.KindHeading, goldmark.KindParagraph}, kinds(root.Children()))

	heading := root.FirstChild
	assert.Equal(t, "# Hello", text(tree, heading))
	assert.Equal(t, "1", heading.Prop(goldmark.PropLevel))
	assert.Equal(t, "Hello", heading.Prop(syntax.PropText))
	assert.Equal(t, "atx", heading.Prop(goldmark.PropStyle))

	assert.Equal(t, "World", text(tree, root.LastChild))
	assert.Equal(t, "World", root.LastChild.Prop(syntax.PropText))
}

func TestParse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tree, err := goldmark.New("").Parse(ctx, "test.md", []byte("# x\n"))
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, tree)
}

func TestParse_BlockRanges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		kind    string
		want    string
	}{
		{"atx closing sequence", "## Title ##\n", goldmark.KindHeading, "## Title ##"},
		{"setext heading", "Title\n=====\n\nbody\n", goldmark.KindHeading, "Title\n====="},
		{"fenced code", "```go\nx := 1\n```\n", goldmark.KindCodeBlock, "```go\nx := 1\n```"},
		{"tilde fence", "~~~~\ncode\n~~~~\n", goldmark.KindCodeBlock, "~~~~\ncode\n~~~~"},
		{"thematic break", "a\n\n***\n", goldmark.KindThematicBreak, "***"},
		{"html block", "<div>\nhi\n</div>\n", goldmark.KindHTMLBlock, "<div>\nhi\n</div>"},
		{"blockquote", "> quote\n> more\n", goldmark.KindBlockquote, "> quote\n> more"},
		{"list", "- a\n- b\n", goldmark.KindList, "- a\n- b"},
		{"ordered list", "1. one\n2. two\n", goldmark.KindList, "1. one\n2. two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree := parse(t, goldmark.FlavorCommonMark, tt.content)
			nodes := syntax.FindByKind(tree.Root, tt.kind)
			require.NotEmpty(t, nodes)
			assert.Equal(t, tt.want, text(tree, nodes[0]))
		})
	}
}

func TestParse_ListItems(t *testing.T) {
	t.Parallel()

	tree := parse(t, goldmark.FlavorCommonMark, "1. one\n2. two\n")
	list := tree.Root.FirstChild
	require.NotNil(t, list)
	assert.Equal(t, "true", list.Prop(goldmark.PropOrdered))
	assert.Equal(t, "1", list.Prop(goldmark.PropStart))

	items := list.Children()
	require.Len(t, items, 2)
	assert.Equal(t, "1.", items[0].Prop(goldmark.PropMarker))
	assert.Equal(t, "2. two", text(tree, items[1]))
	assert.Equal(t, goldmark.KindParagraph, items[1].FirstChild.Kind)
}

func TestParse_FencedCodeProps(t *testing.T) {
	t.Parallel()

	tree := parse(t, goldmark.FlavorCommonMark, "```go\nx := 1\ny := 2\n```\n")
	code := tree.Root.FirstChild
	require.NotNil(t, code)
	assert.Equal(t, "go", code.Prop(goldmark.PropInfo))
	assert.Equal(t, "```", code.Prop(goldmark.PropFence))
	assert.Equal(t, "x := 1\ny := 2", code.Prop(syntax.PropText))
}

func TestParse_GFMTable(t *testing.T) {
	t.Parallel()

	content := "| a | b |\n| - | - |\n| 1 | 2 |\n\ntext\n"
	tree := parse(t, goldmark.FlavorGFM, content)
	tables := syntax.FindByKind(tree.Root, goldmark.KindTable)
	require.Len(t, tables, 1)
	assert.Equal(t, 0, tables[0].Range.StartOffset)
}

func TestParse_RangesNest(t *testing.T) {
	t.Parallel()

	docs := []string{
		"",
		"plain",
		"# H\n\n> - a\n>   b\n> - c\n\n1. x\n\n   ```\n   code\n   ```\n2. y\n",
		"- a\n  - b\n    - c\n\n---\n\n<!-- c -->\n",
		"#\n\n> \n\n-\n- x\n",
		"Title\r\n=====\r\n\r\n- a\r\n- b\r\n",
	}

	for _, doc := range docs {
		tree := parse(t, goldmark.FlavorGFM, doc)
		syntax.Walk(tree.Root, func(n *syntax.Node) error {
			require.True(t, n.Range.IsValid(), "kind %s", n.Kind)
			cursor := n.Range.StartOffset
			for child := n.FirstChild; child != nil; child = child.Next {
				require.GreaterOrEqual(t, child.Range.StartOffset, cursor, "kind %s in %q", child.Kind, doc)
				require.True(t, n.Range.Covers(child.Range), "kind %s in %q", child.Kind, doc)
				cursor = child.Range.EndOffset
			}
			return nil
		})
	}
}

func TestParse_LosslessRoundTrip(t *testing.T) {
	t.Parallel()

	docs := []string{
		"# Hello\n\nWorld\n",
		"Intro\r\n\r\n- a\r\n- b\r\n\r\n> quote\r\n",
		"```js\nlet x;\n```\n\n| a |\n| - |\n| 1 |\n",
	}

	for _, doc := range docs {
		tree := parse(t, goldmark.FlavorGFM, doc)
		session, err := lexical.Setup(tree, lexical.Options{Printer: render.ForLanguage(goldmark.Language)})
		require.NoError(t, err)

		got, err := session.Print(tree.Root)
		require.NoError(t, err)
		assert.Equal(t, doc, got)
	}
}

func TestParse_EditPreservesLayout(t *testing.T) {
	t.Parallel()

	tree := parse(t, goldmark.FlavorCommonMark, "# Hello\n\nWorld\n\n- a\n- b\n")
	session, err := lexical.Setup(tree, lexical.Options{Printer: render.ForLanguage(goldmark.Language)})
	require.NoError(t, err)

	list := syntax.FindByKind(tree.Root, goldmark.KindList)[0]
	item := syntax.NewNode(goldmark.KindListItem)
	item.Props = map[string]string{goldmark.PropMarker: "-"}
	require.NoError(t, syntax.AppendChild(item, syntax.NewLeaf(goldmark.KindParagraph, "c")))

	_, err = session.Append(list, item)
	require.NoError(t, err)

	got, err := session.Print(tree.Root)
	require.NoError(t, err)
	assert.Equal(t, "# Hello\n\nWorld\n\n- a\n- b\n- c\n", got)
}
