package api

import (
	"context"
	"fmt"
	"log"

	"github.com/example/task-events-backend/modules/task"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Module is the HTTP driving adapter. It maps inbound requests onto the task
// service and maps domain errors onto response codes.
type Module struct {
	app        *fiber.App
	taskModule *task.Module
	tasks      task.TaskService
	port       int
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new API module. The task module must be registered
// before this one so its service exists when Start runs.
func NewModule(port int, taskModule *task.Module) *Module {
	return &Module{
		port:       port,
		taskModule: taskModule,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// Start initializes the Fiber HTTP server.
func (m *Module) Start(_ context.Context) error {
	if m.tasks == nil {
		if m.taskModule == nil {
			return fmt.Errorf("task module dependency not set")
		}
		m.tasks = m.taskModule.Service()
		if m.tasks == nil {
			return fmt.Errorf("task service not initialized")
		}
	}

	m.app = m.newApp()

	// Server availability is verified via Health().
	go func() {
		if err := m.app.Listen(fmt.Sprintf(":%d", m.port)); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%d", m.port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *Module) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// newApp builds the Fiber application with middleware and routes.
func (m *Module) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	m.app = app
	m.setupRoutes()
	return app
}
