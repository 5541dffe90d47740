package lexical_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lexkeep/pkg/eol"
	"github.com/yaklabco/lexkeep/pkg/lexical"
	"github.com/yaklabco/lexkeep/pkg/render"
	"github.com/yaklabco/lexkeep/pkg/syntax"
)

var fieldRe = regexp.MustCompile(`(private)\s+(?:/\*.*?\*/\s*)?(\w+)\s+(\w+);`)

// classSource is a class whose body starts with a trailing comment and
// holds four fields, one per line.
func classSource(le eol.LineEnding) string {
	e := le.Raw()
	return "    public class Foo { //comment" + e +
		"        private String a;" + e +
		"        private String b;" + e +
		"        private String c;" + e +
		"        private String d;" + e +
		"    }"
}

func span(text, kind string, start, end int) *syntax.Node {
	n := syntax.NewNode(kind)
	n.Range = syntax.SourceRange{StartOffset: start, EndOffset: end}
	if kind == "modifiers" || kind == "identifier" || kind == "type_identifier" {
		n.Props = map[string]string{syntax.PropText: text[start:end]}
	}
	return n
}

func add(t *testing.T, parent *syntax.Node, children ...*syntax.Node) *syntax.Node {
	t.Helper()
	for _, child := range children {
		require.NoError(t, syntax.AppendChild(parent, child))
	}
	return parent
}

// parseClass builds the tree a Java grammar would give classSource.
func parseClass(t *testing.T, text string) (*syntax.Tree, *syntax.Node) {
	t.Helper()

	start := strings.Index(text, "public")
	end := strings.LastIndex(text, "}") + 1
	nameStart := strings.Index(text, "Foo")
	bodyStart := strings.Index(text, "{")

	body := span(text, "class_body", bodyStart, end)
	for _, m := range fieldRe.FindAllStringSubmatchIndex(text, -1) {
		add(t, body, add(t, span(text, "field_declaration", m[0], m[1]),
			span(text, "modifiers", m[2], m[3]),
			span(text, "type_identifier", m[4], m[5]),
			add(t, span(text, "variable_declarator", m[6], m[7]), span(text, "identifier", m[6], m[7])),
		))
	}

	class := add(t, span(text, "class_declaration", start, end),
		span(text, "modifiers", start, start+len("public")),
		span(text, "identifier", nameStart, nameStart+len("Foo")),
		body,
	)
	root := add(t, syntax.NewNode("program"), class)

	return syntax.NewTree("Foo.java", []byte(text), root), body
}

func newField(name string) *syntax.Node {
	field := syntax.NewNode("field_declaration")
	_ = syntax.AppendChild(field, syntax.NewLeaf("modifiers", "private"))
	_ = syntax.AppendChild(field, syntax.NewLeaf("type_identifier", "String"))
	decl := syntax.NewNode("variable_declarator")
	_ = syntax.AppendChild(decl, syntax.NewLeaf("identifier", name))
	_ = syntax.AppendChild(field, decl)
	return field
}

func javaRules(t *testing.T) *render.Rules {
	t.Helper()
	rules, err := render.Builtin("java")
	require.NoError(t, err)
	return rules
}

func setup(t *testing.T, tree *syntax.Tree, opts lexical.Options) *lexical.Session {
	t.Helper()
	if opts.Printer == nil {
		opts.Printer = javaRules(t)
	}
	sess, err := lexical.Setup(tree, opts)
	require.NoError(t, err)
	return sess
}

func printRoot(t *testing.T, sess *lexical.Session) string {
	t.Helper()
	out, err := sess.Print(sess.Tree().Root)
	require.NoError(t, err)
	return out
}
