// Package treesitter parses source code into a syntax.Tree using
// tree-sitter grammars.
//
// Named, non-extra tree-sitter nodes become syntax nodes. Anonymous
// tokens such as keywords and punctuation, and extras such as comments,
// are not mapped; their text remains part of the enclosing node.
package treesitter

import (
	"context"
	"errors"
	"fmt"
	"slices"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/yaklabco/lexkeep/pkg/syntax"
)

// ErrUnsupportedLanguage is returned by New for a language without a grammar.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// grammars maps language names to tree-sitter grammars.
var grammars = map[string]func() *sitter.Language{
	"go":         golang.GetLanguage,
	"java":       java.GetLanguage,
	"javascript": javascript.GetLanguage,
	"python":     python.GetLanguage,
	"rust":       rust.GetLanguage,
}

// Languages returns the names of the supported languages in sorted order.
func Languages() []string {
	names := make([]string, 0, len(grammars))
	for name := range grammars {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Parser parses one language. It is safe for concurrent use; every call
// to Parse uses its own tree-sitter parser.
type Parser struct {
	name string
	lang *sitter.Language
}

// New returns a parser for the named language.
func New(name string) (*Parser, error) {
	grammar, ok := grammars[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, name)
	}
	return &Parser{name: name, lang: grammar()}, nil
}

// Language returns the language name of trees produced by p.
func (p *Parser) Language() string {
	return p.name
}

// Parse parses content into a syntax tree. The root node spans the
// whole content. Syntax errors do not fail the parse; they appear as
// ERROR nodes.
//
// Grammars end line comments at '\n' only, so the grammar sees a copy in
// which every lone '\r' is a '\n'. The swap keeps byte offsets, and leaf
// text is taken from the original bytes.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*syntax.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	src := make([]byte, len(content))
	copy(src, content)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(p.lang)

	tsTree, err := parser.ParseCtx(ctx, nil, grammarInput(src))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tsTree.Close()

	tsRoot := tsTree.RootNode()
	root := syntax.NewNode(tsRoot.Type())
	root.Range = syntax.SourceRange{StartOffset: 0, EndOffset: len(src)}
	mapChildren(tsRoot, root, src)

	tree := syntax.NewTree(path, src, root)
	tree.Language = p.name
	return tree, nil
}

// grammarInput returns src with lone CRs turned into LFs, or src itself
// when it has none.
func grammarInput(src []byte) []byte {
	var out []byte
	for i, b := range src {
		if b != '\r' || (i+1 < len(src) && src[i+1] == '\n') {
			continue
		}
		if out == nil {
			out = slices.Clone(src)
		}
		out[i] = '\n'
	}
	if out == nil {
		return src
	}
	return out
}

// mapChildren maps the named children of a tree-sitter node onto parent.
func mapChildren(tsNode *sitter.Node, parent *syntax.Node, src []byte) {
	for i := range int(tsNode.NamedChildCount()) {
		child := tsNode.NamedChild(i)
		if child == nil || child.IsExtra() || child.IsMissing() {
			continue
		}
		node := mapNode(child, src)
		// Fresh nodes cannot form a cycle.
		_ = syntax.AppendChild(parent, node)
	}
}

// mapNode converts one named tree-sitter node and its named descendants.
// Nodes without named children become leaves carrying their text.
func mapNode(tsNode *sitter.Node, src []byte) *syntax.Node {
	node := syntax.NewNode(tsNode.Type())
	node.Range = syntax.SourceRange{
		StartOffset: int(tsNode.StartByte()),
		EndOffset:   int(tsNode.EndByte()),
	}

	mapChildren(tsNode, node, src)
	if !node.HasChildren() {
		node.Props = map[string]string{syntax.PropText: tsNode.Content(src)}
	}
	return node
}
