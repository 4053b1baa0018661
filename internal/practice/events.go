package practice

// NATS subjects for session lifecycle events.
const (
	SubjectSessionStarted   = "parlo.session.started"
	SubjectSessionEvaluated = "parlo.session.evaluated"
	SubjectTaskAssigned     = "parlo.session.task.assigned"
	SubjectTaskCompleted    = "parlo.session.task.completed"
)

// SessionEvent announces session start and evaluation.
type SessionEvent struct {
	SessionID string `json:"session_id"`
	Level     string `json:"level"`
}

// TaskEvent announces task assignment and completion within a session.
type TaskEvent struct {
	SessionID   string `json:"session_id"`
	TaskID      int    `json:"task_id,omitempty"`
	Description string `json:"description,omitempty"`
	Response    string `json:"response,omitempty"`
}
