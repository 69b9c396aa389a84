package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rmagtoto/tala/internal/notify"
	"github.com/rmagtoto/tala/internal/util"
)

const documentName = "tasks.json"

// DefaultRetentionDays is how long completed tasks are kept before the
// retention sweep deletes them.
const DefaultRetentionDays = 7

var (
	// ErrTaskNotFound reports an unknown task ID.
	ErrTaskNotFound = errors.New("task not found")

	// ErrIndexOutOfRange reports a todo index outside the task's todo list.
	ErrIndexOutOfRange = errors.New("todo index out of range")
)

// document is the persisted shape of the task collection.
type document struct {
	Tasks []Task `json:"tasks"`
}

// Repository is the sole owner of the task document. Every operation is a
// full read-modify-write: load (with retention sweep), mutate, rewrite the
// whole document atomically. A successful call never leaves a partial write
// observable.
//
// The design assumes a single writing process; there is no file locking.
type Repository struct {
	path      string
	retention time.Duration
	logger    *slog.Logger
	observers []notify.Observer
}

// NewRepository creates a repository storing its document in dir.
func NewRepository(dir string, retentionDays int, logger *slog.Logger) *Repository {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &Repository{
		path:      filepath.Join(dir, documentName),
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		logger:    logger,
	}
}

// AddObserver registers a post-commit observer. Observers run after every
// persist and are individually fault-isolated.
func (r *Repository) AddObserver(o notify.Observer) {
	r.observers = append(r.observers, o)
}

// Create appends a new in-progress task and returns its ID. The caller is
// responsible for rejecting empty descriptions before calling.
func (r *Repository) Create(description string) (string, error) {
	doc, err := r.load()
	if err != nil {
		return "", err
	}

	now := time.Now()
	t := Task{
		ID:          util.NewTaskID(description, now),
		Description: description,
		Todos:       []TodoItem{},
		Status:      StatusInProgress,
		Created:     Timestamp(now),
		Updated:     Timestamp(now),
	}
	doc.Tasks = append(doc.Tasks, t)

	if err := r.persist(doc); err != nil {
		return "", err
	}
	return t.ID, nil
}

// Get returns a copy of the task with the given ID.
func (r *Repository) Get(taskID string) (Task, error) {
	doc, err := r.load()
	if err != nil {
		return Task{}, err
	}
	i := findTask(doc, taskID)
	if i < 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	return doc.Tasks[i].Clone(), nil
}

// AddTodo appends a todo item to the task.
func (r *Repository) AddTodo(taskID, text string) error {
	doc, err := r.load()
	if err != nil {
		return err
	}
	i := findTask(doc, taskID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}

	doc.Tasks[i].Todos = append(doc.Tasks[i].Todos, TodoItem{Text: text})
	doc.Tasks[i].Updated = Timestamp(time.Now())

	return r.persist(doc)
}

// MarkDone marks the todo at index done. When the last remaining todo
// becomes done the task's status flips to completed as a side effect.
// Re-marking an already-done item is a no-op that still bumps Updated.
func (r *Repository) MarkDone(taskID string, index int) error {
	doc, err := r.load()
	if err != nil {
		return err
	}
	i := findTask(doc, taskID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	if index < 0 || index >= len(doc.Tasks[i].Todos) {
		return fmt.Errorf("%w: %d (task %s has %d todos)", ErrIndexOutOfRange, index, taskID, len(doc.Tasks[i].Todos))
	}

	doc.Tasks[i].Todos[index].Done = true
	doc.Tasks[i].Updated = Timestamp(time.Now())
	if doc.Tasks[i].AllDone() {
		doc.Tasks[i].Status = StatusCompleted
	}

	return r.persist(doc)
}

// DeleteTodo permanently removes the todo at index and returns it. Later
// indices shift down by one.
func (r *Repository) DeleteTodo(taskID string, index int) (TodoItem, error) {
	doc, err := r.load()
	if err != nil {
		return TodoItem{}, err
	}
	i := findTask(doc, taskID)
	if i < 0 {
		return TodoItem{}, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	if index < 0 || index >= len(doc.Tasks[i].Todos) {
		return TodoItem{}, fmt.Errorf("%w: %d (task %s has %d todos)", ErrIndexOutOfRange, index, taskID, len(doc.Tasks[i].Todos))
	}

	removed := doc.Tasks[i].Todos[index]
	doc.Tasks[i].Todos = append(doc.Tasks[i].Todos[:index], doc.Tasks[i].Todos[index+1:]...)
	doc.Tasks[i].Updated = Timestamp(time.Now())

	if err := r.persist(doc); err != nil {
		return TodoItem{}, err
	}
	return removed, nil
}

// SetStatus overwrites the task's status unconditionally. There is no
// legality check on the transition; external resume logic depends on that.
func (r *Repository) SetStatus(taskID string, status Status) error {
	doc, err := r.load()
	if err != nil {
		return err
	}
	i := findTask(doc, taskID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}

	doc.Tasks[i].Status = status
	doc.Tasks[i].Updated = Timestamp(time.Now())

	return r.persist(doc)
}

// HardDelete removes the task regardless of status. A missing task is
// logged and ignored.
func (r *Repository) HardDelete(taskID string) error {
	doc, err := r.load()
	if err != nil {
		return err
	}
	i := findTask(doc, taskID)
	if i < 0 {
		r.logger.Warn("hard delete of unknown task", "task_id", taskID)
		return nil
	}

	doc.Tasks = append(doc.Tasks[:i], doc.Tasks[i+1:]...)
	return r.persist(doc)
}

// List returns copies of every task in the document.
func (r *Repository) List() ([]Task, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	out := make([]Task, 0, len(doc.Tasks))
	for _, t := range doc.Tasks {
		out = append(out, t.Clone())
	}
	return out, nil
}

// ListOpen returns every task whose status is not completed, sorted by
// created descending on a best-effort basis. Tasks with malformed created
// timestamps keep their insertion order instead of erroring.
func (r *Repository) ListOpen() ([]Task, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	var open []Task
	for _, t := range doc.Tasks {
		if t.Status != StatusCompleted {
			open = append(open, t.Clone())
		}
	}

	sort.SliceStable(open, func(i, j int) bool {
		ti, okI := ParseTimestamp(open[i].Created)
		tj, okJ := ParseTimestamp(open[j].Created)
		if !okI || !okJ {
			return false
		}
		return ti.After(tj)
	})

	return open, nil
}

// load reads the document and runs the retention sweep. A missing or
// unparsable document yields an empty repository: availability is preferred
// over failing fast on corruption. If the sweep dropped anything, the pruned
// document is persisted before returning.
func (r *Repository) load() (*document, error) {
	doc := &document{}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return nil, fmt.Errorf("reading task document: %w", err)
	}

	if err := json.Unmarshal(data, doc); err != nil {
		r.logger.Warn("task document unparsable, starting empty", "path", r.path, "error", err)
		return &document{}, nil
	}

	if r.sweep(doc) {
		if err := r.persist(doc); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// sweep drops completed tasks older than the retention window. Returns true
// if anything was dropped. Tasks with malformed updated timestamps are kept.
func (r *Repository) sweep(doc *document) bool {
	now := time.Now()
	kept := doc.Tasks[:0]
	dropped := 0
	for _, t := range doc.Tasks {
		if t.Status == StatusCompleted {
			if updated, ok := ParseTimestamp(t.Updated); ok && now.Sub(updated) >= r.retention {
				r.logger.Info("retention sweep deleting task", "task_id", t.ID, "updated", t.Updated)
				dropped++
				continue
			}
		}
		kept = append(kept, t)
	}
	doc.Tasks = kept
	return dropped > 0
}

// persist rewrites the whole document atomically via temp file + rename,
// then notifies observers. Observer failures never surface to the caller.
func (r *Repository) persist(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling task document: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmpPath := fmt.Sprintf("%s.tmp.%d", r.path, os.Getpid())
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	notify.Publish(r.logger, r.observers, notify.EventTasksUpdated)
	return nil
}

func findTask(doc *document, taskID string) int {
	for i := range doc.Tasks {
		if doc.Tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}
