package task

import (
	"context"
	"fmt"
	"log"
	"time"

	domain "github.com/example/task-events-backend/domain/task"
	"github.com/example/task-events-backend/events"
)

// TaskService defines the mutation and read surface driving adapters use.
type TaskService interface {
	// Create validates and persists a new task, then emits task.created.
	Create(ctx context.Context, req CreateTaskRequest) (*domain.Task, error)
	// Get retrieves a single task by id.
	Get(ctx context.Context, id int64) (*domain.Task, error)
	// List retrieves all tasks, newest first.
	List(ctx context.Context) ([]domain.Task, error)
	// Update replaces the mutable fields of a task, then emits task.updated.
	Update(ctx context.Context, req UpdateTaskRequest) (*domain.Task, error)
	// Delete removes a task, then emits task.deleted.
	Delete(ctx context.Context, id int64) error
}

// TaskServiceImpl implements TaskService on top of a TaskRepository and an
// EventPublisher. The store commit is the source of truth: an event is only
// attempted after a successful commit, and a failed publish is logged without
// failing the mutation.
type TaskServiceImpl struct {
	repo      TaskRepository
	publisher EventPublisher
}

// Compile-time interface check.
var _ TaskService = (*TaskServiceImpl)(nil)

// NewTaskService creates a new TaskService. publisher may be nil, in which
// case events are skipped entirely.
func NewTaskService(repo TaskRepository, publisher EventPublisher) *TaskServiceImpl {
	return &TaskServiceImpl{
		repo:      repo,
		publisher: publisher,
	}
}

// Create handles the task creation request.
func (s *TaskServiceImpl) Create(ctx context.Context, req CreateTaskRequest) (*domain.Task, error) {
	if req.Title == "" {
		return nil, domain.ErrTitleRequired
	}

	t, err := s.repo.Insert(ctx, req.Title, req.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}

	s.publish(ctx, events.Key(t.ID), events.NewTaskCreated(t, time.Now().UTC()))
	return t, nil
}

// Get handles the single-task read request.
func (s *TaskServiceImpl) Get(ctx context.Context, id int64) (*domain.Task, error) {
	return s.repo.FindByID(ctx, id)
}

// List handles the list request.
func (s *TaskServiceImpl) List(ctx context.Context) ([]domain.Task, error) {
	return s.repo.FindAll(ctx)
}

// Update handles the task update request. All three mutable fields are
// replaced; there are no partial-update semantics.
func (s *TaskServiceImpl) Update(ctx context.Context, req UpdateTaskRequest) (*domain.Task, error) {
	if req.Title == "" {
		return nil, domain.ErrTitleRequired
	}
	status := domain.Status(req.Status)
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	t, err := s.repo.Update(ctx, req.ID, req.Title, req.Description, status)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Key(t.ID), events.NewTaskUpdated(t, time.Now().UTC()))
	return t, nil
}

// Delete handles the task deletion request. The emitted event carries only
// the id, not the deleted snapshot.
func (s *TaskServiceImpl) Delete(ctx context.Context, id int64) error {
	t, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.publish(ctx, events.Key(t.ID), events.NewTaskDeleted(t.ID, time.Now().UTC()))
	return nil
}

// publish attempts a best-effort event delivery after a successful commit.
// Failures are logged and never surfaced to the caller.
func (s *TaskServiceImpl) publish(ctx context.Context, key string, env events.Envelope) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, key, env); err != nil {
		log.Printf("[task] Warning: failed to publish %s event for task %s: %v", env.Event, key, err)
	}
}
