package domain

import "time"

// TaskStatus is the three-state task lifecycle. Transitions are unrestricted:
// any status may be set to any other, including DONE back to OPEN.
type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "OPEN"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// Valid reports whether s is one of the three canonical statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Task is a personal task record. OwnerID is set at creation and never
// reassigned; it is the sole authorization boundary for every query.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
