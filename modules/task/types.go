package task

import (
	"context"

	domain "github.com/example/task-events-backend/domain/task"
	"github.com/example/task-events-backend/events"
)

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GetTaskRequest is the request for fetching a single task.
type GetTaskRequest struct {
	ID int64 `json:"id"`
}

// UpdateTaskRequest is the request for updating a task. All three mutable
// fields are replaced unconditionally.
type UpdateTaskRequest struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	ID int64 `json:"id"`
}

// ListTasksRequest is the request for listing all tasks.
type ListTasksRequest struct{}

// TaskReply is the reply for single-task operations on the service container.
// Domain failures are carried in Error so callers on the NATS side can
// distinguish them from transport errors.
type TaskReply struct {
	Task  *domain.Task `json:"task,omitempty"`
	Error string       `json:"error,omitempty"`
}

// ListTasksReply is the reply for the list operation.
type ListTasksReply struct {
	Tasks []domain.Task `json:"tasks"`
	Total int           `json:"total"`
	Error string        `json:"error,omitempty"`
}

// DeleteTaskReply is the reply for the delete operation.
type DeleteTaskReply struct {
	Deleted bool   `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

// TaskRepository is the durable store contract for task rows. Every operation
// is a single atomic statement; the store assigns ids and timestamps.
type TaskRepository interface {
	Insert(ctx context.Context, title, description string) (*domain.Task, error)
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	FindAll(ctx context.Context) ([]domain.Task, error)
	Update(ctx context.Context, id int64, title, description string, status domain.Status) (*domain.Task, error)
	Delete(ctx context.Context, id int64) (*domain.Task, error)
}

// EventPublisher is the broker-side contract the mutation service publishes
// through. Delivery is best-effort; failures never affect the mutation.
type EventPublisher interface {
	Publish(ctx context.Context, key string, env events.Envelope) error
}
