package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Document fields.
	FieldLanguage   = "language"
	FieldLineEnding = "line_ending"
	FieldFallback   = "fallback"
	FieldScript     = "script"
	FieldEdits      = "edits"
	FieldBackup     = "backup"

	// Configuration fields.
	FieldIndent = "indent"
	FieldFlavor = "flavor"
	FieldJobs   = "jobs"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesMatched    = "files_matched"
	FieldFilesMismatched = "files_mismatched"
	FieldFilesSkipped    = "files_skipped"
	FieldFilesErrored    = "files_errored"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
