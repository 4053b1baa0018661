package practice

import (
	"encoding/json"
	"testing"
)

func TestTaskEventRoundTrip(t *testing.T) {
	event := TaskEvent{
		SessionID:   "4d0c2f9a-1111-2222-3333-444455556666",
		TaskID:      2,
		Description: "Describe a problem in your city",
	}

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var parsed TaskEvent
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if parsed != event {
		t.Errorf("round-trip mismatch: got %+v, want %+v", parsed, event)
	}
}

func TestSubjectConstants(t *testing.T) {
	subjects := []string{
		SubjectSessionStarted,
		SubjectSessionEvaluated,
		SubjectTaskAssigned,
		SubjectTaskCompleted,
	}
	seen := make(map[string]bool)
	for _, subject := range subjects {
		if subject == "" {
			t.Error("empty subject")
		}
		if seen[subject] {
			t.Errorf("duplicate subject %s", subject)
		}
		seen[subject] = true
	}
}
