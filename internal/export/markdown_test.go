package export

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmagtoto/tala/internal/notify"
	"github.com/rmagtoto/tala/internal/task"
)

func TestMarkdownExporter(t *testing.T) {
	newRepo := func(t *testing.T) (*task.Repository, string) {
		t.Helper()
		dir := t.TempDir()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		return task.NewRepository(dir, task.DefaultRetentionDays, logger), dir
	}

	t.Run("writes a checklist snapshot", func(t *testing.T) {
		repo, dir := newRepo(t)
		outPath := filepath.Join(dir, "TASKS.md")
		exporter := NewMarkdownExporter(repo, outPath)

		id, _ := repo.Create("Fix bug X")
		repo.AddTodo(id, "write test")
		repo.AddTodo(id, "write fix")
		repo.MarkDone(id, 0)

		if err := exporter.Notify(notify.EventTasksUpdated); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("reading export: %v", err)
		}
		out := string(data)
		if !strings.Contains(out, "## In Progress") {
			t.Errorf("export missing section:\n%s", out)
		}
		if !strings.Contains(out, "- [ ] Fix bug X") {
			t.Errorf("export missing task line:\n%s", out)
		}
		if !strings.Contains(out, "  - [x] write test") || !strings.Contains(out, "  - [ ] write fix") {
			t.Errorf("export missing todo markers:\n%s", out)
		}
	})

	t.Run("ignores interruption events", func(t *testing.T) {
		repo, dir := newRepo(t)
		outPath := filepath.Join(dir, "TASKS.md")
		exporter := NewMarkdownExporter(repo, outPath)

		if err := exporter.Notify(notify.EventInterruptionsUpdated); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(outPath); !os.IsNotExist(err) {
			t.Error("export written for an interruption event")
		}
	})

	t.Run("wired as repository observer", func(t *testing.T) {
		repo, dir := newRepo(t)
		outPath := filepath.Join(dir, "TASKS.md")
		repo.AddObserver(NewMarkdownExporter(repo, outPath))

		repo.Create("Task A")

		data, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("export not written on persist: %v", err)
		}
		if !strings.Contains(string(data), "Task A") {
			t.Errorf("export %q missing task", data)
		}
	})
}
