package runner

import (
	"github.com/yaklabco/lexkeep/pkg/eol"
	"github.com/yaklabco/lexkeep/pkg/textdiff"
)

// Status is the outcome of checking one file.
type Status string

const (
	// StatusMatch means printing the untouched tree reproduced the file.
	StatusMatch Status = "match"

	// StatusMismatch means the printed text differs from the file.
	StatusMismatch Status = "mismatch"

	// StatusSkipped means the file is vendored, generated or binary.
	StatusSkipped Status = "skipped"

	// StatusError means the file could not be read, parsed or printed.
	StatusError Status = "error"
)

// FileOutcome is the check result for one file.
type FileOutcome struct {
	Path     string
	Language string
	Status   Status

	// LineEnding is the detected line ending. Fallback is true when the
	// file had no line break and the configured fallback was used.
	LineEnding eol.LineEnding
	Fallback   bool
	Counts     eol.Counts

	// Diff is set for mismatches.
	Diff *textdiff.Diff

	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesMatched    int
	FilesMismatched int
	FilesSkipped    int
	FilesErrored    int

	// ByLanguage counts checked files per language.
	ByLanguage map[string]int
}

// Result is the overall runner result. Files are ordered by path.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasMismatches reports whether any file failed to round-trip.
func (r *Result) HasMismatches() bool {
	return r != nil && r.Stats.FilesMismatched > 0
}

// HasErrors reports whether any file could not be checked.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch outcome.Status {
	case StatusMatch:
		r.Stats.FilesMatched++
	case StatusMismatch:
		r.Stats.FilesMismatched++
	case StatusSkipped:
		r.Stats.FilesSkipped++
		return
	case StatusError:
		r.Stats.FilesErrored++
		return
	}
	r.Stats.ByLanguage[outcome.Language]++
}
