// Package export renders best-effort snapshots of the task collection for
// external consumers. Exporters are post-commit observers: their failures
// are discarded and never roll back the mutation that triggered them.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/rmagtoto/tala/internal/notify"
	"github.com/rmagtoto/tala/internal/task"
)

// MarkdownExporter writes the whole task list as a markdown checklist after
// each task document persist.
type MarkdownExporter struct {
	repo *task.Repository
	path string
}

// NewMarkdownExporter creates an exporter writing to path.
func NewMarkdownExporter(repo *task.Repository, path string) *MarkdownExporter {
	return &MarkdownExporter{repo: repo, path: path}
}

// Notify implements notify.Observer.
func (e *MarkdownExporter) Notify(event notify.Event) error {
	if event != notify.EventTasksUpdated {
		return nil
	}

	tasks, err := e.repo.List()
	if err != nil {
		return err
	}

	return os.WriteFile(e.path, []byte(render(tasks)), 0644)
}

func render(tasks []task.Task) string {
	var b strings.Builder
	b.WriteString("# Tasks\n")

	sections := []struct {
		title  string
		status task.Status
	}{
		{"In Progress", task.StatusInProgress},
		{"Interrupted", task.StatusInterrupted},
		{"Completed", task.StatusCompleted},
	}

	for _, section := range sections {
		var matched []task.Task
		for _, t := range tasks {
			if t.Status == section.status {
				matched = append(matched, t)
			}
		}
		if len(matched) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n## %s\n\n", section.title)
		for _, t := range matched {
			marker := " "
			if t.Status == task.StatusCompleted {
				marker = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s (`%s`)\n", marker, t.Description, t.ID)
			for _, todo := range t.Todos {
				todoMarker := " "
				if todo.Done {
					todoMarker = "x"
				}
				fmt.Fprintf(&b, "  - [%s] %s\n", todoMarker, todo.Text)
			}
		}
	}

	return b.String()
}
