package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type loggerKey struct{}

// WithLogger attaches logger to ctx. A nil ctx starts from Background.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger attached by WithLogger, or Default when
// ctx carries none.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, _ := ctx.Value(loggerKey{}).(*log.Logger); logger != nil {
			return logger
		}
	}
	return Default()
}

// ForPath is FromContext with the path field bound, for per-file work.
func ForPath(ctx context.Context, path string) *log.Logger {
	return FromContext(ctx).With(FieldPath, path)
}
