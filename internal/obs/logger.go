package obs

import (
	"io"
	"log/slog"
)

// NewLogger returns a JSON logger tagged with service.
func NewLogger(w io.Writer, service string, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("service", service)
}
