package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/lexkeep/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's result.
type JSONFileResult struct {
	Path       string      `json:"path"`
	Language   string      `json:"language,omitempty"`
	Status     string      `json:"status"`
	LineEnding string      `json:"lineEnding,omitempty"`
	Fallback   bool        `json:"fallback,omitempty"`
	Counts     *JSONCounts `json:"counts,omitempty"`
	Diff       string      `json:"diff,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// JSONCounts holds line-break counts.
type JSONCounts struct {
	CRLF int `json:"crlf"`
	LF   int `json:"lf"`
	CR   int `json:"cr"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int            `json:"filesDiscovered"`
	FilesMatched    int            `json:"filesMatched"`
	FilesMismatched int            `json:"filesMismatched"`
	FilesSkipped    int            `json:"filesSkipped"`
	FilesErrored    int            `json:"filesErrored"`
	ByLanguage      map[string]int `json:"byLanguage"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesMismatched, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{ByLanguage: make(map[string]int)},
	}
	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesMatched:    stats.FilesMatched,
		FilesMismatched: stats.FilesMismatched,
		FilesSkipped:    stats.FilesSkipped,
		FilesErrored:    stats.FilesErrored,
		ByLanguage:      stats.ByLanguage,
	}
	if output.Summary.ByLanguage == nil {
		output.Summary.ByLanguage = make(map[string]int)
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		entry := JSONFileResult{
			Path:     displayPath(file.Path, r.opts.WorkingDir),
			Language: file.Language,
			Status:   string(file.Status),
		}

		switch file.Status {
		case runner.StatusMatch, runner.StatusMismatch:
			entry.LineEnding = file.LineEnding.String()
			entry.Fallback = file.Fallback
			entry.Counts = &JSONCounts{CRLF: file.Counts.CRLF, LF: file.Counts.LF, CR: file.Counts.CR}
		case runner.StatusSkipped, runner.StatusError:
		}
		if file.Diff.HasChanges() {
			entry.Diff = file.Diff.String()
		}
		if file.Error != nil {
			entry.Error = file.Error.Error()
		}

		output.Files = append(output.Files, entry)
	}

	return output
}
