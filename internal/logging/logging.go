// Package logging sets up the structured debug log.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Setup creates a JSON logger writing to debug.log inside the data
// directory. It returns the logger, a cleanup function that closes the log
// file, and any error. The file is truncated per run so it reflects only
// the current session.
func Setup(dataDir string) (*slog.Logger, func() error, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating data directory: %w", err)
	}

	logPath := filepath.Join(dataDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return slog.New(handler), f.Close, nil
}
