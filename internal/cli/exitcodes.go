package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/lexkeep/internal/configloader"
	"github.com/yaklabco/lexkeep/pkg/fsutil"
)

// Exit codes for lexkeep.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitMismatch indicates that check found files that do not
	// reproduce byte for byte, or files that could not be processed.
	ExitMismatch = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration or script errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrMismatchFound is returned by check when any file fails to
	// reproduce. It only selects the exit code and is not logged.
	ErrMismatchFound = errors.New("round-trip mismatch found")

	// ErrUsage marks invalid command-line usage.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration and script errors.
	ErrConfig = errors.New("invalid configuration")
)

// ExitCodeFromError maps a command error to a process exit code.
func ExitCodeFromError(err error) int {
	var validation *configloader.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrMismatchFound):
		return ExitMismatch
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validation):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrModified),
		errors.Is(err, fs.ErrExist):
		return ExitIOError
	default:
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return ExitIOError
		}
		return ExitInternalError
	}
}
