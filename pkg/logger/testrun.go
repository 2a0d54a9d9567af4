package logger

import (
	"io"
	"log/slog"
	"os"
)

func NewTestHandler(level slog.Level) slog.Handler {
	return slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level})
}

// NewCLIHandler writes plain text records to stderr, keeping stdout for
// command output.
func NewCLIHandler(level slog.Level) slog.Handler {
	return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
}
