package convo

// Level is the learner's configured proficiency tier. It gates prompt style
// and the difficulty of example tasks offered to the Responder.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// ParseLevel validates a level string from the API boundary.
func ParseLevel(s string) (Level, bool) {
	switch Level(s) {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return Level(s), true
	}
	return "", false
}

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one recorded utterance in session order.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"content"`
}

// TaskStatus tracks a speaking task through its lifecycle. Completed is terminal.
type TaskStatus string

const (
	TaskAssigned  TaskStatus = "assigned"
	TaskCompleted TaskStatus = "completed"
)

// Task is a speaking exercise assigned to the user mid-conversation.
// IDs are allocated in strictly increasing order starting at 1.
type Task struct {
	ID          int        `json:"id"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Response    string     `json:"response,omitempty"`
}

// Profile is the per-session learner record. Transcriptions is an independent
// audit trail: one entry per user turn, in turn order.
type Profile struct {
	Level          Level
	Transcriptions []string
	Tasks          *TaskBook
}

// NewProfile creates a fresh profile for a newly selected level.
func NewProfile(level Level) *Profile {
	return &Profile{
		Level: level,
		Tasks: NewTaskBook(),
	}
}
