package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskInReview   TaskStatus = "IN_REVIEW"
	TaskDone       TaskStatus = "DONE"
)

// A rejected review sends the task back to IN_PROGRESS; only an approved
// review reaches DONE.
var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskTodo:       {TaskInProgress},
	TaskInProgress: {TaskInReview},
	TaskInReview:   {TaskDone, TaskInProgress},
	TaskDone:       {},
}

// CanTransitionTask reports whether a task may move from one status to
// another.
func CanTransitionTask(from, to TaskStatus) bool {
	for _, next := range taskTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValidTaskStatus checks if the given status is a known task status.
func IsValidTaskStatus(s TaskStatus) bool {
	_, ok := taskTransitions[s]
	return ok
}

// Task is a unit of work under a project, optionally assigned to one team
// member.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Submission is work handed in against a task. Approved stays nil until an
// admin reviews it.
type Submission struct {
	ID          uuid.UUID  `json:"id"`
	TaskID      uuid.UUID  `json:"task_id"`
	SubmittedBy uuid.UUID  `json:"submitted_by"`
	Content     string     `json:"content"`
	Feedback    string     `json:"feedback,omitempty"`
	Approved    *bool      `json:"approved,omitempty"`
	ReviewedBy  *uuid.UUID `json:"reviewed_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
