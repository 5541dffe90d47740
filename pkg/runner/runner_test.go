package runner_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lexkeep/pkg/config"
	"github.com/yaklabco/lexkeep/pkg/eol"
	"github.com/yaklabco/lexkeep/pkg/fsutil"
	"github.com/yaklabco/lexkeep/pkg/runner"
	"github.com/yaklabco/lexkeep/pkg/syntax"
)

// trimParser loses trailing whitespace, so its trees never round-trip.
type trimParser struct{}

func (trimParser) Language() string { return "trim" }

func (trimParser) Parse(_ context.Context, path string, content []byte) (*syntax.Tree, error) {
	tree := syntax.NewTree(path, bytes.TrimRight(content, " \r\n"), syntax.NewNode("root"))
	tree.Language = "trim"
	return tree, nil
}

func newEngine(t *testing.T) *runner.Engine {
	t.Helper()
	engine, err := runner.NewEngine(config.NewConfig(), nil)
	require.NoError(t, err)
	return engine
}

const javaCRLF = "class A {\r\n    int x;\r\n\r\n    // note\r\n    int y;\r\n}\r\n"

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"A.java":        javaCRLF,
		"docs/guide.md": "# Guide\n\n- one\n- two\n",
		"app.py":        "x = 1",
		"vendor/lib.go": "package lib\n",
		"notes.txt":     "ignored\n",
	})

	r := runner.New(newEngine(t))
	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Stats.FilesDiscovered)
	assert.Equal(t, 3, result.Stats.FilesMatched)
	assert.Equal(t, 1, result.Stats.FilesSkipped)
	assert.False(t, result.HasMismatches())
	assert.False(t, result.HasErrors())
	assert.Equal(t, map[string]int{"java": 1, "markdown": 1, "python": 1}, result.Stats.ByLanguage)

	byName := make(map[string]runner.FileOutcome)
	for _, f := range result.Files {
		byName[filepath.Base(f.Path)] = f
	}

	java := byName["A.java"]
	assert.Equal(t, runner.StatusMatch, java.Status)
	assert.Equal(t, eol.CRLF, java.LineEnding)
	assert.Equal(t, 6, java.Counts.CRLF)
	assert.False(t, java.Fallback)

	py := byName["app.py"]
	assert.Equal(t, runner.StatusMatch, py.Status)
	assert.True(t, py.Fallback, "no line break falls back to the configured ending")
	assert.Equal(t, eol.LF, py.LineEnding)

	assert.Equal(t, runner.StatusSkipped, byName["lib.go"].Status)
}

func TestRunner_Mismatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"b.trim": "kept\n",
		"a.trim": "kept",
	})

	engine := newEngine(t)
	engine.Registry().Register(trimParser{})
	engine.Registry().MapExtension(".trim", "trim")

	cfg := config.NewConfig()
	cfg.Extensions = []string{".trim"}
	opts := runner.OptionsFromConfig(cfg, nil)
	opts.WorkingDir = dir

	result, err := runner.New(engine).Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	assert.Equal(t, filepath.Join(dir, "a.trim"), result.Files[0].Path, "outcomes are ordered by path")
	assert.Equal(t, runner.StatusMatch, result.Files[0].Status)

	bad := result.Files[1]
	assert.Equal(t, runner.StatusMismatch, bad.Status)
	require.NotNil(t, bad.Diff)
	assert.Equal(t, "b.trim", bad.Diff.Path)
	assert.True(t, bad.Diff.HasChanges())
	assert.True(t, result.HasMismatches())
}

func TestRunner_ParallelMatchesSerial(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := map[string]string{}
	for i := range 12 {
		files[filepath.Join("src", string(rune('a'+i))+".java")] = javaCRLF
		files[filepath.Join("doc", string(rune('a'+i))+".md")] = "# T\n\ntext\n"
	}
	writeTree(t, dir, files)

	r := runner.New(newEngine(t))
	serial, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 1})
	require.NoError(t, err)
	parallel, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 8})
	require.NoError(t, err)

	require.Len(t, parallel.Files, len(serial.Files))
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		assert.Equal(t, serial.Files[i].Status, parallel.Files[i].Status)
	}
	assert.Equal(t, 24, parallel.Stats.FilesMatched)
}

func TestRunner_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.java": "class A {}\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runner.New(newEngine(t)).Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)

	cfg := config.NewConfig()
	cfg.LineEnding = ""
	engine, err := runner.NewEngine(cfg, nil)
	require.NoError(t, err)
	writeTree(t, dir, map[string]string{"flat.java": "class A {}"})
	result, err := runner.New(engine).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.True(t, result.HasErrors(), "no line break and no fallback is an error")
	assert.Equal(t, 1, result.Stats.FilesErrored)
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "java.yaml")
	require.NoError(t, os.WriteFile(rulesPath, []byte("kinds:\n  class_body:\n    separator: \"\\n\"\n"), 0o600))

	cfg := config.NewConfig()
	cfg.Rules = map[string]string{"java": rulesPath}
	cfg.Languages = map[string]string{".jav": "java"}
	engine, err := runner.NewEngine(cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, "\n", engine.Rules("java").Kinds["class_body"].Separator)
	assert.Equal(t, "package ", engine.Rules("java").Kinds["package_declaration"].Open, "builtin kinds are kept")
	assert.Equal(t, "java", engine.Registry().Detect("X.jav", nil))

	for name, mutate := range map[string]func(*config.Config){
		"indent":      func(c *config.Config) { c.Indent = "wide" },
		"line ending": func(c *config.Config) { c.LineEnding = "nel" },
		"rules file":  func(c *config.Config) { c.Rules = map[string]string{"go": filepath.Join(dir, "missing.yaml")} },
	} {
		bad := config.NewConfig()
		mutate(bad)
		_, err := runner.NewEngine(bad, nil)
		assert.Error(t, err, name)
	}
}

func TestDocument_Save(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "A.java")
	require.NoError(t, os.WriteFile(path, []byte(javaCRLF), 0o600))

	ctx := context.Background()
	doc, err := newEngine(t).Open(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "java", doc.Language)

	body := doc.Tree.Root.ChildAt(0).ChildAt(doc.Tree.Root.ChildAt(0).ChildCount() - 1)
	require.Equal(t, "class_body", body.Kind)
	_, err = doc.Session.Remove(body, body.ChildAt(0))
	require.NoError(t, err)

	result, err := doc.Save(ctx, fsutil.NewBackupConfig(true, "sidecar"))
	require.NoError(t, err)
	assert.True(t, result.Written)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "class A {\r\n    int y;\r\n}\r\n", string(got))
	assert.FileExists(t, result.BackupPath)
}
