// Package notify delivers post-commit events to best-effort observers.
package notify

import "log/slog"

// Event identifies which document was persisted.
type Event string

const (
	// EventTasksUpdated fires after the task document is written.
	EventTasksUpdated Event = "tasks_updated"

	// EventInterruptionsUpdated fires after the interruption document is written.
	EventInterruptionsUpdated Event = "interruptions_updated"
)

// Observer receives a callback after every successful persist.
// Implementations are side channels (markdown export, external sync); they
// must never be able to roll back or block the core mutation.
type Observer interface {
	Notify(event Event) error
}

// Publish invokes each observer in order. Errors and panics are discarded
// per observer, so one failing observer cannot stop the others.
func Publish(logger *slog.Logger, observers []Observer, event Event) {
	for _, o := range observers {
		publishOne(logger, o, event)
	}
}

func publishOne(logger *slog.Logger, o Observer, event Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("observer panicked", "event", string(event), "panic", r)
		}
	}()
	if err := o.Notify(event); err != nil {
		logger.Debug("observer failed", "event", string(event), "error", err)
	}
}
