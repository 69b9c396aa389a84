// Package interrupt tracks the single current task and the set of tasks it
// displaced. It owns the command classifier and the interrupt/resume
// protocol, delegating task creation and status transitions to the task
// repository.
//
// The interruption document and the task document are written separately,
// with no transaction spanning them. A crash between the two writes leaves
// a transient inconsistency; the protocol tolerates it.
package interrupt

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rmagtoto/tala/internal/notify"
	"github.com/rmagtoto/tala/internal/task"
)

const documentName = "interruptions.json"

// ErrEmptyDescription rejects blank task descriptions before they reach the
// repository.
var ErrEmptyDescription = errors.New("task description must not be empty")

// Coordinator enforces that at most one task is active at a time. It is
// constructed explicitly, loads its state from disk on construction, and
// persists after every mutation.
type Coordinator struct {
	path      string
	repo      *task.Repository
	logger    *slog.Logger
	observers []notify.Observer
	state     State
}

// NewCoordinator loads the interruption document from dir and returns a
// coordinator bound to the given repository. A missing or unparsable
// document yields empty state rather than an error.
func NewCoordinator(dir string, repo *task.Repository, logger *slog.Logger) *Coordinator {
	c := &Coordinator{
		path:   filepath.Join(dir, documentName),
		repo:   repo,
		logger: logger,
	}
	c.load()
	return c
}

// AddObserver registers a post-commit observer. Observers run after every
// persist and are individually fault-isolated.
func (c *Coordinator) AddObserver(o notify.Observer) {
	c.observers = append(c.observers, o)
}

// StartTask interrupts the current task if there is one, creates a new task
// in the repository, and makes it current.
func (c *Coordinator) StartTask(description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", ErrEmptyDescription
	}

	c.interruptCurrent()

	id, err := c.repo.Create(description)
	if err != nil {
		return "", err
	}

	c.state.CurrentTask = &Record{
		TaskID:      id,
		Description: description,
		StartedAt:   task.Timestamp(time.Now()),
		Status:      RecordStatusActive,
	}

	if err := c.persist(); err != nil {
		return "", err
	}
	return id, nil
}

// Interrupt pushes the current task onto the interrupted list and clears
// it. No-op when there is no current task.
func (c *Coordinator) Interrupt() error {
	if c.state.CurrentTask == nil {
		return nil
	}
	c.interruptCurrent()
	return c.persist()
}

// interruptCurrent records the current task as interrupted and marks it in
// the repository. The caller persists. A task missing from the repository
// is logged and skipped; the record is still pushed.
func (c *Coordinator) interruptCurrent() {
	cur := c.state.CurrentTask
	if cur == nil {
		return
	}

	rec := *cur
	rec.Status = RecordStatusInterrupted
	c.state.InterruptedTasks = append(c.state.InterruptedTasks, rec)

	if err := c.repo.SetStatus(cur.TaskID, task.StatusInterrupted); err != nil {
		c.logger.Warn("could not mark task interrupted", "task_id", cur.TaskID, "error", err)
	}

	c.state.CurrentTask = nil
}

// ResumeAll sets every interrupted task back to in_progress, then clears
// the interrupted list and the current task in one persist. A task that no
// longer exists in the repository is skipped rather than aborting the bulk
// resume.
func (c *Coordinator) ResumeAll() error {
	for _, rec := range c.state.InterruptedTasks {
		err := c.repo.SetStatus(rec.TaskID, task.StatusInProgress)
		if err == nil {
			continue
		}
		if errors.Is(err, task.ErrTaskNotFound) {
			c.logger.Warn("interrupted task no longer exists, skipping", "task_id", rec.TaskID)
			continue
		}
		return err
	}

	c.state.InterruptedTasks = nil
	c.state.CurrentTask = nil
	return c.persist()
}

// Current returns a copy of the current task's record, or nil.
func (c *Coordinator) Current() *Record {
	if c.state.CurrentTask == nil {
		return nil
	}
	rec := *c.state.CurrentTask
	return &rec
}

// Interrupted returns a copy of the interrupted task records, oldest first.
func (c *Coordinator) Interrupted() []Record {
	out := make([]Record, len(c.state.InterruptedTasks))
	copy(out, c.state.InterruptedTasks)
	return out
}

// ProcessCommand classifies free text and dispatches it: new-task intent
// starts (and interrupts), resume intent resumes everything, status intent
// renders a snapshot, anything else names the current task.
func (c *Coordinator) ProcessCommand(text string) (string, error) {
	switch Classify(text) {
	case IntentNewTask:
		prev := c.Current()
		id, err := c.StartTask(text)
		if err != nil {
			return "", err
		}
		if prev != nil {
			return fmt.Sprintf("Interrupted %q. Started task %s.", prev.Description, id), nil
		}
		return fmt.Sprintf("Started task %s.", id), nil

	case IntentResume:
		n := len(c.state.InterruptedTasks)
		if err := c.ResumeAll(); err != nil {
			return "", err
		}
		if n == 0 {
			return "No interrupted tasks to resume.", nil
		}
		return fmt.Sprintf("Resumed %d interrupted task(s).", n), nil

	case IntentStatus:
		return c.statusSnapshot(), nil

	default:
		if cur := c.state.CurrentTask; cur != nil {
			return fmt.Sprintf("Continuing %q.", cur.Description), nil
		}
		return "No active task.", nil
	}
}

// statusSnapshot renders the current and interrupted tasks for display.
func (c *Coordinator) statusSnapshot() string {
	var b strings.Builder
	if cur := c.state.CurrentTask; cur != nil {
		fmt.Fprintf(&b, "Current: %s (%s, since %s)\n", cur.Description, cur.TaskID, cur.StartedAt)
	} else {
		b.WriteString("Current: none\n")
	}
	fmt.Fprintf(&b, "Interrupted: %d\n", len(c.state.InterruptedTasks))
	for _, rec := range c.state.InterruptedTasks {
		fmt.Fprintf(&b, "  - %s (%s)\n", rec.Description, rec.TaskID)
	}
	if open, err := c.repo.ListOpen(); err == nil {
		fmt.Fprintf(&b, "Open tasks: %d\n", len(open))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Flush persists the current state. Called on shutdown so the document
// reflects the last in-memory state even if no mutation ran since load.
func (c *Coordinator) Flush() error {
	return c.persist()
}

// load reads the interruption document. Missing file means empty state;
// corruption is logged and recovered as empty state. A legacy bare-ID
// current_task is upgraded, recovering the description from the repository
// when the task still exists.
func (c *Coordinator) load() {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Warn("could not read interruption document, starting empty", "path", c.path, "error", err)
		}
		return
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		c.logger.Warn("interruption document unparsable, starting empty", "path", c.path, "error", err)
		return
	}
	c.state = state

	if cur := c.state.CurrentTask; cur != nil && cur.Description == "" {
		if t, err := c.repo.Get(cur.TaskID); err == nil {
			cur.Description = t.Description
		} else {
			c.logger.Warn("legacy current task not found in repository", "task_id", cur.TaskID)
		}
		if cur.StartedAt == "" {
			cur.StartedAt = c.state.LastUpdated
		}
	}
}

// persist rewrites the interruption document atomically and notifies
// observers. Observer failures never surface to the caller.
func (c *Coordinator) persist() error {
	c.state.LastUpdated = task.Timestamp(time.Now())
	if c.state.InterruptedTasks == nil {
		c.state.InterruptedTasks = []Record{}
	}

	data, err := json.MarshalIndent(&c.state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling interruption document: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmpPath := fmt.Sprintf("%s.tmp.%d", c.path, os.Getpid())
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	notify.Publish(c.logger, c.observers, notify.EventInterruptionsUpdated)
	return nil
}
