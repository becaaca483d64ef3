package api

import (
	"errors"
	"time"

	domain "github.com/example/task-events-backend/domain/task"
	"github.com/example/task-events-backend/modules/task"
	"github.com/gofiber/fiber/v2"
)

// setupRoutes configures all HTTP routes.
func (m *Module) setupRoutes() {
	m.app.Get("/health", m.healthHandler)

	api := m.app.Group("/api")
	tasks := api.Group("/tasks")
	tasks.Get("/", m.listTasks)
	tasks.Post("/", m.createTask)
	tasks.Get("/:id", m.getTask)
	tasks.Put("/:id", m.updateTask)
	tasks.Delete("/:id", m.deleteTask)
}

// healthHandler handles GET /health.
func (m *Module) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}

// listTasks handles GET /api/tasks.
func (m *Module) listTasks(c *fiber.Ctx) error {
	tasks, err := m.tasks.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to fetch tasks",
		})
	}
	return c.JSON(tasks)
}

// getTask handles GET /api/tasks/:id.
func (m *Module) getTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return notFound(c)
	}

	t, err := m.tasks.Get(c.Context(), int64(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to fetch task",
		})
	}
	return c.JSON(t)
}

// createTask handles POST /api/tasks.
func (m *Module) createTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	t, err := m.tasks.Create(c.Context(), task.CreateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTitleRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error: "Title is required",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to create task",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

// updateTask handles PUT /api/tasks/:id.
func (m *Module) updateTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return notFound(c)
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	t, err := m.tasks.Update(c.Context(), task.UpdateTaskRequest{
		ID:          int64(id),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return notFound(c)
		case errors.Is(err, domain.ErrTitleRequired):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error: "Title is required",
			})
		case errors.Is(err, domain.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error: "Invalid status",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to update task",
		})
	}
	return c.JSON(t)
}

// deleteTask handles DELETE /api/tasks/:id.
func (m *Module) deleteTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return notFound(c)
	}

	if err := m.tasks.Delete(c.Context(), int64(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to delete task",
		})
	}
	return c.JSON(MessageResponse{Message: "Task deleted successfully"})
}

// notFound writes the canonical missing-task error body.
func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
		Error: "Task not found",
	})
}
