package task

import (
	"errors"
	"time"
)

// Status represents the completion state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Valid reports whether the status is one of the defined values.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Task is the persisted entity representing a unit of work.
// The store owns id assignment and both timestamps.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Domain errors (exported for checking via errors.Is).
var (
	// ErrNotFound is returned when no task matches the given id.
	ErrNotFound = errors.New("task not found")
	// ErrTitleRequired is returned when a mutation carries an empty title.
	ErrTitleRequired = errors.New("title is required")
	// ErrInvalidStatus is returned when an update carries an unknown status.
	ErrInvalidStatus = errors.New("invalid status")
)
