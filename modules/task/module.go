package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Module provides task management services backed by PostgreSQL, with task
// lifecycle events published through the injected EventPublisher.
type Module struct {
	pool      *pgxpool.Pool
	service   TaskService
	publisher EventPublisher
	dbURL     string
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new task module. The publisher is constructed in main
// and shared with the broker module that manages its connection lifecycle.
func NewModule(dbURL string, publisher EventPublisher) *Module {
	return &Module{
		dbURL:     dbURL,
		publisher: publisher,
	}
}

// NewModuleWithService creates a task module with an injected service,
// skipping database initialization. Used in tests.
func NewModuleWithService(service TaskService) *Module {
	return &Module{
		service: service,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "task"
}

// Service exposes the task service to in-process driving adapters.
func (m *Module) Service() TaskService {
	return m.service
}

// Start initializes the connection pool, the schema and the service layer.
func (m *Module) Start(ctx context.Context) error {
	if m.service != nil {
		log.Println("[task] Module started with injected service")
		return nil
	}

	log.Printf("[task] Connecting to PostgreSQL...")

	pool, err := pgxpool.New(ctx, m.dbURL)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}
	m.pool = pool

	repo := NewPostgresRepository(pool)
	if err := repo.InitSchema(ctx); err != nil {
		pool.Close()
		return err
	}
	m.service = NewTaskService(repo, m.publisher)

	log.Println("[task] Module started successfully")
	return nil
}

// Stop releases the connection pool.
func (m *Module) Stop(_ context.Context) error {
	if m.pool != nil {
		m.pool.Close()
	}
	log.Println("[task] Module stopped")
	return nil
}

// Health performs a health check on the task module.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.pool == nil {
		if m.service != nil {
			return mono.HealthStatus{Healthy: true, Message: "injected service"}
		}
		return mono.HealthStatus{
			Healthy: false,
			Message: "database pool not initialized",
		}
	}

	if err := m.pool.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "pgx/v5",
		},
	}
}

// RegisterServices registers the request-reply services in the service
// container. The framework prefixes them as "services.task.<name>" on the
// NATS side.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.handleCreate,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.handleGet,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.handleList,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update", json.Unmarshal, json.Marshal, m.handleUpdate,
	); err != nil {
		return fmt.Errorf("failed to register update service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.handleDelete,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}

	log.Printf("[task] Registered services: services.task.{create,get,list,update,delete}")
	return nil
}

// handleCreate handles the create request-reply service.
func (m *Module) handleCreate(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskReply, error) {
	t, err := m.service.Create(ctx, req)
	if err != nil {
		return TaskReply{Error: err.Error()}, nil
	}
	return TaskReply{Task: t}, nil
}

// handleGet handles the get request-reply service.
func (m *Module) handleGet(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskReply, error) {
	t, err := m.service.Get(ctx, req.ID)
	if err != nil {
		return TaskReply{Error: err.Error()}, nil
	}
	return TaskReply{Task: t}, nil
}

// handleList handles the list request-reply service.
func (m *Module) handleList(ctx context.Context, _ ListTasksRequest, _ *mono.Msg) (ListTasksReply, error) {
	tasks, err := m.service.List(ctx)
	if err != nil {
		return ListTasksReply{Error: err.Error()}, nil
	}
	return ListTasksReply{Tasks: tasks, Total: len(tasks)}, nil
}

// handleUpdate handles the update request-reply service.
func (m *Module) handleUpdate(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskReply, error) {
	t, err := m.service.Update(ctx, req)
	if err != nil {
		return TaskReply{Error: err.Error()}, nil
	}
	return TaskReply{Task: t}, nil
}

// handleDelete handles the delete request-reply service.
func (m *Module) handleDelete(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskReply, error) {
	if err := m.service.Delete(ctx, req.ID); err != nil {
		return DeleteTaskReply{Error: err.Error()}, nil
	}
	return DeleteTaskReply{Deleted: true}, nil
}
