package interrupt

import "strings"

// Intent is the classification of a free-text command.
type Intent int

const (
	IntentContinue Intent = iota
	IntentNewTask
	IntentResume
	IntentStatus
)

func (i Intent) String() string {
	switch i {
	case IntentNewTask:
		return "new_task"
	case IntentResume:
		return "resume"
	case IntentStatus:
		return "status"
	case IntentContinue:
		return "continue"
	default:
		return "unknown"
	}
}

// Keyword tables for the bilingual (English/Tagalog) classifier.
var (
	newTaskKeywords = []string{
		"new task", "create", "implement", "fix", "build", "start",
		"gumawa", "gawin", "bagong", "simulan",
	}
	resumeKeywords = []string{
		"resume", "go back", "ituloy", "balik",
	}
	statusKeywords = []string{
		"status", "progress", "ano na", "saan na",
	}
)

// Classify matches text against the keyword tables, case-insensitively and
// by substring. The priority order is fixed: new-task keywords win over
// resume keywords, resume over status. Text matching nothing means the user
// is still on the current task.
func Classify(text string) Intent {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, newTaskKeywords):
		return IntentNewTask
	case containsAny(lower, resumeKeywords):
		return IntentResume
	case containsAny(lower, statusKeywords):
		return IntentStatus
	default:
		return IntentContinue
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
