package interrupt

import "encoding/json"

// Record statuses. The current task's record is "active"; records pushed
// onto the interrupted list are "interrupted".
const (
	RecordStatusActive      = "active"
	RecordStatusInterrupted = "interrupted"
)

// Record is a point-in-time copy of a task's descriptor, captured when the
// task became current or stopped being current. It is not a live reference;
// later mutations to the task are not reflected here.
type Record struct {
	TaskID      string `json:"task_id"`
	Description string `json:"description"`
	StartedAt   string `json:"started_at"`
	Status      string `json:"status"`
}

// State is the persisted interruption document. It lives in its own JSON
// file, written independently from the task document.
type State struct {
	CurrentTask      *Record  `json:"current_task"`
	InterruptedTasks []Record `json:"interrupted_tasks"`
	LastUpdated      string   `json:"last_updated"`
}

// UnmarshalJSON handles the legacy document shape where current_task was
// persisted as a bare task ID string instead of a full record. A bare ID is
// upgraded to a record here; the coordinator fills in the description from
// the repository on load.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw struct {
		CurrentTask      json.RawMessage `json:"current_task"`
		InterruptedTasks []Record        `json:"interrupted_tasks"`
		LastUpdated      string          `json:"last_updated"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.CurrentTask = nil
	s.InterruptedTasks = raw.InterruptedTasks
	s.LastUpdated = raw.LastUpdated

	if len(raw.CurrentTask) == 0 || string(raw.CurrentTask) == "null" {
		return nil
	}

	var legacyID string
	if err := json.Unmarshal(raw.CurrentTask, &legacyID); err == nil {
		s.CurrentTask = &Record{TaskID: legacyID, Status: RecordStatusActive}
		return nil
	}

	var rec Record
	if err := json.Unmarshal(raw.CurrentTask, &rec); err != nil {
		return err
	}
	s.CurrentTask = &rec
	return nil
}
