package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/yaklabco/lexkeep/pkg/eol"
	"github.com/yaklabco/lexkeep/pkg/fsutil"
	"github.com/yaklabco/lexkeep/pkg/langdetect"
	"github.com/yaklabco/lexkeep/pkg/textdiff"
)

// Runner checks that every discovered file prints back byte for byte
// from its freshly parsed tree.
type Runner struct {
	Engine *Engine
}

// New creates a Runner.
func New(engine *Engine) *Runner {
	return &Runner{Engine: engine}
}

// Run discovers files under opts.Paths and checks them with a bounded
// worker pool. Outcomes are returned in path order regardless of
// completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: Stats{FilesDiscovered: len(files), ByLanguage: make(map[string]int)},
	}
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workDir, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, workDir string, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.Check(ctx, workDir, path)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// Check verifies one file. Paths in diffs are shown relative to workDir.
func (r *Runner) Check(ctx context.Context, workDir, path string) FileOutcome {
	outcome := FileOutcome{Path: path}

	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Status, outcome.Error = StatusError, err
		return outcome
	}
	if langdetect.Skip(rel, content) {
		outcome.Status = StatusSkipped
		return outcome
	}
	outcome.Counts = eol.Count(string(content))

	doc, err := r.Engine.Load(ctx, path, content)
	if err != nil {
		outcome.Status, outcome.Error = StatusError, err
		return outcome
	}
	defer doc.Session.Close()

	outcome.Language = doc.Language
	outcome.LineEnding, outcome.Fallback = doc.LineEnding()

	printed, err := doc.Print()
	if err != nil {
		outcome.Status, outcome.Error = StatusError, err
		return outcome
	}

	if printed == string(content) {
		outcome.Status = StatusMatch
		return outcome
	}
	outcome.Status = StatusMismatch
	outcome.Diff = textdiff.Generate(rel, content, []byte(printed))
	return outcome
}
