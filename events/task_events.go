// Package events defines the task lifecycle event envelope published to the
// task-events topic.
package events

import (
	"strconv"
	"time"

	domain "github.com/example/task-events-backend/domain/task"
)

// Event names carried in the envelope.
const (
	TaskCreated = "task.created"
	TaskUpdated = "task.updated"
	TaskDeleted = "task.deleted"
)

// Topic is the logical topic all task lifecycle events are published to.
// The publish key (the task id as text) selects the ordered partition
// within it.
const Topic = "task-events"

// Envelope is the wire format of a task lifecycle event. Created and updated
// events carry the affected task; deleted events carry only its id.
type Envelope struct {
	Event     string       `json:"event"`
	Task      *domain.Task `json:"task,omitempty"`
	TaskID    string       `json:"taskId,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// Key returns the partition key for a task id.
func Key(id int64) string {
	return strconv.FormatInt(id, 10)
}

// NewTaskCreated builds the envelope for a freshly inserted task.
func NewTaskCreated(t *domain.Task, now time.Time) Envelope {
	return Envelope{Event: TaskCreated, Task: t, Timestamp: now}
}

// NewTaskUpdated builds the envelope for a committed update.
func NewTaskUpdated(t *domain.Task, now time.Time) Envelope {
	return Envelope{Event: TaskUpdated, Task: t, Timestamp: now}
}

// NewTaskDeleted builds the envelope for a committed delete. Only the id is
// carried; the deleted snapshot is not part of the contract.
func NewTaskDeleted(id int64, now time.Time) Envelope {
	return Envelope{Event: TaskDeleted, TaskID: Key(id), Timestamp: now}
}
