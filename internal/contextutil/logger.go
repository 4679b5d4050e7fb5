// Package contextutil carries the request-scoped logger through context.
package contextutil

import (
	"context"
	"log/slog"
)

type contextKey string

const loggerKey contextKey = "logger"

// LoggerFromContext returns the logger stored in ctx, falling back to
// slog.Default when none was set.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// LoggerKey returns the context key the HTTP middleware stores the
// request logger under.
func LoggerKey() contextKey {
	return loggerKey
}
