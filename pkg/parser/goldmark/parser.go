// Package goldmark parses Markdown into a syntax.Tree using the goldmark
// library. Only block structure is mapped; inline markup stays inside
// the text of its enclosing block.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/lexkeep/pkg/syntax"
)

// Language is the language name recorded on parsed trees.
const Language = "markdown"

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser turns Markdown into syntax trees for one flavor.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New returns a Parser for flavor. Anything other than gfm parses as
// CommonMark.
func New(flavor string) *Parser {
	p := &Parser{flavor: FlavorCommonMark}
	var opts []goldmark.Option
	if flavor == FlavorGFM {
		p.flavor = FlavorGFM
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	p.md = goldmark.New(opts...)
	return p
}

// Flavor reports the flavor p parses.
func (p *Parser) Flavor() string { return p.flavor }

// Language implements the parser registry's Parser interface.
func (p *Parser) Language() string { return Language }

// Parse builds the block tree of content. Each mapped node carries the
// byte range of its source. Nodes whose range cannot be recovered, or
// that would overlap a sibling, are dropped and their text stays with
// the enclosing node.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*syntax.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	src := append([]byte{}, content...)
	doc := p.md.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	root := newMapper(src).mapDocument(doc)
	sanitize(root, syntax.SourceRange{StartOffset: 0, EndOffset: len(src)})

	tree := syntax.NewTree(path, src, root)
	tree.Language = Language
	return tree, nil
}
