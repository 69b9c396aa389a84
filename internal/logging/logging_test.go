package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup(t *testing.T) {
	t.Run("writes json entries to debug.log", func(t *testing.T) {
		dir := t.TempDir()

		logger, cleanup, err := Setup(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		logger.Info("hello", "key", "value")
		if err := cleanup(); err != nil {
			t.Fatalf("cleanup: %v", err)
		}

		data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
		if err != nil {
			t.Fatalf("reading log: %v", err)
		}
		if !strings.Contains(string(data), `"msg":"hello"`) {
			t.Errorf("log %q missing entry", data)
		}
	})

	t.Run("creates the data directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", ".tala")

		_, cleanup, err := Setup(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cleanup()

		if _, err := os.Stat(filepath.Join(dir, "debug.log")); err != nil {
			t.Errorf("debug.log not created: %v", err)
		}
	})
}
