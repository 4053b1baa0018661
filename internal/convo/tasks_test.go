package convo

import (
	"errors"
	"math/rand"
	"testing"
)

func TestTaskBook_AssignAllocatesIncreasingIDs(t *testing.T) {
	book := NewTaskBook()

	for want := 1; want <= 5; want++ {
		task, err := book.Assign("task")
		if err != nil {
			t.Fatalf("Assign failed: %v", err)
		}
		if task.ID != want {
			t.Errorf("expected id %d, got %d", want, task.ID)
		}
		if task.Status != TaskAssigned {
			t.Errorf("expected status assigned, got %s", task.Status)
		}
		if _, err := book.Complete(task.ID, "done"); err != nil {
			t.Fatalf("Complete failed: %v", err)
		}
	}
}

func TestTaskBook_RefusesSecondOpenTask(t *testing.T) {
	book := NewTaskBook()

	if _, err := book.Assign("first"); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	_, err := book.Assign("second")
	if !errors.Is(err, ErrInvariant) {
		t.Errorf("expected ErrInvariant, got %v", err)
	}
}

func TestTaskBook_CompleteIsTerminal(t *testing.T) {
	book := NewTaskBook()

	task, err := book.Assign("describe your weekend")
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	done, err := book.Complete(task.ID, "I went hiking")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if done.Status != TaskCompleted {
		t.Errorf("expected completed, got %s", done.Status)
	}
	if done.Response != "I went hiking" {
		t.Errorf("expected response recorded, got %q", done.Response)
	}

	if _, err := book.Complete(task.ID, "again"); !errors.Is(err, ErrInvariant) {
		t.Errorf("expected ErrInvariant on double complete, got %v", err)
	}
}

func TestTaskBook_CompleteUnknownTask(t *testing.T) {
	book := NewTaskBook()
	if _, err := book.Complete(7, "hello"); !errors.Is(err, ErrInvariant) {
		t.Errorf("expected ErrInvariant for unknown id, got %v", err)
	}
}

// Random assign/complete sequences never leave more than one open task, and
// ids stay strictly increasing from 1.
func TestTaskBook_RandomSequencesHoldInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 100; run++ {
		book := NewTaskBook()
		lastID := 0
		for op := 0; op < 50; op++ {
			if rng.Intn(2) == 0 {
				task, err := book.Assign("t")
				if err == nil {
					if task.ID != lastID+1 {
						t.Fatalf("run %d: id %d after %d", run, task.ID, lastID)
					}
					lastID = task.ID
				}
			} else if open := book.Assigned(); open != nil {
				if _, err := book.Complete(open.ID, "r"); err != nil {
					t.Fatalf("run %d: Complete open task failed: %v", run, err)
				}
			}

			openCount := 0
			for _, task := range book.All() {
				if task.Status == TaskAssigned {
					openCount++
				}
			}
			if openCount > 1 {
				t.Fatalf("run %d: %d tasks open at once", run, openCount)
			}
		}
	}
}
