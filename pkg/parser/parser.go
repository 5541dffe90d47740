// Package parser selects and runs the grammar adapter for a file.
package parser

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/yaklabco/lexkeep/pkg/langdetect"
	"github.com/yaklabco/lexkeep/pkg/parser/goldmark"
	"github.com/yaklabco/lexkeep/pkg/parser/treesitter"
	"github.com/yaklabco/lexkeep/pkg/syntax"
)

// ErrNoParser is returned when no parser is registered for a language.
var ErrNoParser = errors.New("no parser for language")

// Parser turns source content into a syntax tree.
type Parser interface {
	// Language returns the language name recorded on produced trees.
	Language() string

	// Parse parses content. Implementations must give every mapped node
	// the byte range of its source text.
	Parse(ctx context.Context, path string, content []byte) (*syntax.Tree, error)
}

// Registry maps language names to parsers. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	parsers    map[string]Parser
	extensions map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers:    make(map[string]Parser),
		extensions: make(map[string]string),
	}
}

// Default returns a registry holding the goldmark Markdown parser for
// flavor and a tree-sitter parser for every bundled grammar.
func Default(flavor string) *Registry {
	r := NewRegistry()
	r.Register(goldmark.New(flavor))
	for _, name := range treesitter.Languages() {
		p, err := treesitter.New(name)
		if err != nil {
			continue
		}
		r.Register(p)
	}
	return r
}

// Register adds p under its language name, replacing any earlier parser.
func (r *Registry) Register(p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[p.Language()] = p
}

// MapExtension forces files with extension ext (".x" or "x") to be
// parsed as lang.
func (r *Registry) MapExtension(ext, lang string) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extensions[strings.ToLower(ext)] = lang
}

// Lookup returns the parser for lang.
//
//nolint:ireturn // callers only need the Parser behaviour
func (r *Registry) Lookup(lang string) (Parser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parsers[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoParser, lang)
	}
	return p, nil
}

// Languages returns the registered language names in sorted order.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Detect returns the language for a file: an extension mapping if one
// matches, otherwise the detected language.
func (r *Registry) Detect(path string, content []byte) string {
	ext := strings.ToLower(filepath.Ext(path))
	r.mu.RLock()
	lang, ok := r.extensions[ext]
	r.mu.RUnlock()
	if ok {
		return lang
	}
	return langdetect.Detect(path, content)
}

// ForFile returns the parser for a file.
//
//nolint:ireturn // callers only need the Parser behaviour
func (r *Registry) ForFile(path string, content []byte) (Parser, error) {
	return r.Lookup(r.Detect(path, content))
}

// Parse parses a file with the parser ForFile selects.
func (r *Registry) Parse(ctx context.Context, path string, content []byte) (*syntax.Tree, error) {
	p, err := r.ForFile(path, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tree, err := p.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}
