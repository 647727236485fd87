package core

import (
	"context"
	"log/slog"
)

// Context keys for execution options
type contextKey string

const loggerKey contextKey = "logger"

// WithLogger attaches the command logger to the context
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// loggerFrom returns the context logger, or a logger that discards everything
func loggerFrom(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.New(slog.DiscardHandler)
}
