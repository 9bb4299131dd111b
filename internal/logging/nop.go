package logging

import (
	"log/slog"
)

// Discard returns a logger that drops everything. Handy default for tests
// and for components constructed without an explicit logger.
func Discard() Logger {
	return NewSlogLogger(slog.New(slog.DiscardHandler))
}
