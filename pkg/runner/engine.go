package runner

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/lexkeep/pkg/config"
	"github.com/yaklabco/lexkeep/pkg/eol"
	"github.com/yaklabco/lexkeep/pkg/fsutil"
	"github.com/yaklabco/lexkeep/pkg/lexical"
	"github.com/yaklabco/lexkeep/pkg/parser"
	"github.com/yaklabco/lexkeep/pkg/render"
	"github.com/yaklabco/lexkeep/pkg/syntax"
)

// Engine opens files as preserved documents under one configuration.
// It is safe for concurrent use; every document gets its own tree and
// session.
type Engine struct {
	registry *parser.Registry
	rules    map[string]*render.Rules
	indent   lexical.IndentPolicy
	fallback *eol.LineEnding
	logger   *log.Logger
}

// NewEngine builds an engine from cfg. Rule table overrides named in
// cfg.Rules are loaded and merged over the builtin tables. A nil logger
// disables session traces.
func NewEngine(cfg *config.Config, logger *log.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	indent, err := lexical.ParseIndentPolicy(cfg.Indent)
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		registry: parser.Default(string(cfg.Flavor)),
		rules:    make(map[string]*render.Rules),
		indent:   indent,
		logger:   logger,
	}

	if cfg.LineEnding != "" {
		le, err := eol.Parse(cfg.LineEnding)
		if err != nil {
			return nil, err
		}
		engine.fallback = &le
	}

	for ext, lang := range cfg.Languages {
		engine.registry.MapExtension(ext, lang)
	}

	for lang, path := range cfg.Rules {
		override, err := render.Load(path)
		if err != nil {
			return nil, fmt.Errorf("rules for %s: %w", lang, err)
		}
		engine.rules[lang] = render.ForLanguage(lang).Merge(override)
	}

	return engine, nil
}

// Registry returns the parser registry.
func (e *Engine) Registry() *parser.Registry {
	return e.registry
}

// Rules returns the rule table used to print new nodes of lang.
func (e *Engine) Rules(lang string) *render.Rules {
	if rules, ok := e.rules[lang]; ok {
		return rules
	}
	return render.ForLanguage(lang)
}

// Document is a parsed file with a preservation session attached.
type Document struct {
	Path     string
	Language string
	Content  []byte

	// Info is set for documents read from disk and guards Save.
	Info *fsutil.FileInfo

	Tree    *syntax.Tree
	Session *lexical.Session
}

// Open reads path and loads it.
func (e *Engine) Open(ctx context.Context, path string) (*Document, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	doc, err := e.Load(ctx, path, content)
	if err != nil {
		return nil, err
	}
	doc.Info = info
	return doc, nil
}

// Load parses content and starts a session on the tree.
func (e *Engine) Load(ctx context.Context, path string, content []byte) (*Document, error) {
	tree, err := e.registry.Parse(ctx, path, content)
	if err != nil {
		return nil, err
	}

	var logger *log.Logger
	if e.logger != nil {
		logger = e.logger.With("path", path)
	}

	sess, err := lexical.Setup(tree, lexical.Options{
		Printer:            e.Rules(tree.Language),
		Indent:             e.indent,
		FallbackLineEnding: e.fallback,
		Logger:             logger,
	})
	if err != nil {
		return nil, err
	}

	return &Document{
		Path:     path,
		Language: tree.Language,
		Content:  content,
		Tree:     tree,
		Session:  sess,
	}, nil
}

// Print returns the current text of the whole document.
func (d *Document) Print() (string, error) {
	return d.Session.Print(d.Tree.Root)
}

// LineEnding returns the detected line ending and whether it came from
// the configured fallback because the content had no line break.
func (d *Document) LineEnding() (eol.LineEnding, bool) {
	le, err := d.Session.LineEnding(d.Tree.Root)
	return le, err != nil
}

// Save writes the current text back to the file it was read from.
func (d *Document) Save(ctx context.Context, backups fsutil.BackupConfig) (fsutil.SaveResult, error) {
	text, err := d.Print()
	if err != nil {
		return fsutil.SaveResult{}, err
	}
	if d.Info == nil {
		return fsutil.SaveResult{}, fmt.Errorf("save %s: %w", d.Path, fsutil.ErrNilFileInfo)
	}
	return fsutil.Save(ctx, d.Info, []byte(text), backups)
}
