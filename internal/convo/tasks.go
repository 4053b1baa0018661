package convo

import "fmt"

// TaskBook owns every task assigned during a session and enforces the
// lifecycle rules: at most one task is assigned at a time, ids grow strictly
// from 1, and a completed task stays completed.
type TaskBook struct {
	tasks  []*Task
	nextID int
}

func NewTaskBook() *TaskBook {
	return &TaskBook{nextID: 1}
}

// Assigned returns the currently assigned task, or nil when there is none.
func (b *TaskBook) Assigned() *Task {
	for _, t := range b.tasks {
		if t.Status == TaskAssigned {
			return t
		}
	}
	return nil
}

// Count is the lifetime number of tasks ever assigned in this session.
func (b *TaskBook) Count() int {
	return len(b.tasks)
}

// All returns tasks in assignment order.
func (b *TaskBook) All() []*Task {
	return b.tasks
}

// Assign allocates the next id and records a new assigned task. It refuses
// when another task is still open.
func (b *TaskBook) Assign(description string) (*Task, error) {
	if open := b.Assigned(); open != nil {
		return nil, fmt.Errorf("%w: task %d still assigned", ErrInvariant, open.ID)
	}
	t := &Task{
		ID:          b.nextID,
		Description: description,
		Status:      TaskAssigned,
	}
	b.nextID++
	b.tasks = append(b.tasks, t)
	return t, nil
}

// Complete transitions an assigned task to completed and stores the user's
// response. Completing an unknown or already completed task is an invariant
// break.
func (b *TaskBook) Complete(id int, response string) (*Task, error) {
	for _, t := range b.tasks {
		if t.ID != id {
			continue
		}
		if t.Status != TaskAssigned {
			return nil, fmt.Errorf("%w: task %d is %s", ErrInvariant, id, t.Status)
		}
		t.Status = TaskCompleted
		t.Response = response
		return t, nil
	}
	return nil, fmt.Errorf("%w: no task %d", ErrInvariant, id)
}
