// Package logging configures the client's diagnostic logger. The TUI owns
// the terminal, so log output goes to a file under the user's state dir.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Open returns a structured logger writing to the given file path, plus a
// close func for the underlying file. Logging is best-effort: when the file
// cannot be created the returned logger discards everything rather than
// failing the app.
func Open(path string) (*slog.Logger, func() error) {
	if path == "" {
		return discard()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return discard()
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return discard()
	}
	logger := slog.New(slog.NewTextHandler(file, nil))
	return logger, file.Close
}

func discard() (*slog.Logger, func() error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return logger, func() error { return nil }
}
