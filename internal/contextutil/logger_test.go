package contextutil

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func TestLoggerFromContext(t *testing.T) {
	stored := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(context.Background(), LoggerKey(), stored)

	if got := LoggerFromContext(ctx); got != stored {
		t.Error("LoggerFromContext() did not return the stored logger")
	}
}

func TestLoggerFromContext_Default(t *testing.T) {
	if got := LoggerFromContext(context.Background()); got != slog.Default() {
		t.Error("LoggerFromContext() without a stored logger should return slog.Default()")
	}
}
