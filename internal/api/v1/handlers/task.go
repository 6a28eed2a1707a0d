package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskboard/internal/service"
	"taskboard/pkg/logger"
)

// TaskHandler serves the task CRUD. All access is scoped to the token's
// subject; the service reports a task someone else owns as not found.
type TaskHandler struct {
	tasks    *service.TaskService
	validate *validator.Validate
}

func NewTaskHandler(tasks *service.TaskService, validate *validator.Validate) *TaskHandler {
	return &TaskHandler{tasks: tasks, validate: validate}
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	type CreateTaskRequest struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create task", zap.Error(err))
		return fail(c, fiber.StatusBadRequest, "Bad request")
	}

	if err := h.validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during create task", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  fiber.StatusBadRequest,
		})
	}

	task, err := h.tasks.Create(c.UserContext(), req.Title, req.Description, userID)
	if err != nil {
		return domainError(c, err)
	}

	logger.AuditLogger.Info("Task created", zap.String("task_id", task.ID), zap.String("owner_id", userID))
	return ok(c, fiber.StatusCreated, "Task created successfully", task)
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	tasks, err := h.tasks.List(c.UserContext(), userID)
	if err != nil {
		return domainError(c, err)
	}
	return ok(c, fiber.StatusOK, "Tasks fetched successfully", tasks)
}

func (h *TaskHandler) Get(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	taskID := c.Params("id")

	task, err := h.tasks.Get(c.UserContext(), taskID, userID)
	if err != nil {
		return domainError(c, err)
	}
	return ok(c, fiber.StatusOK, "Task found", task)
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	taskID := c.Params("id")

	type UpdateTaskRequest struct {
		Title  *string `json:"title" validate:"omitempty,min=1"`
		Status *string `json:"status"`
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update task", zap.Error(err))
		return fail(c, fiber.StatusBadRequest, "Bad request")
	}

	if err := h.validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during update task", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  fiber.StatusBadRequest,
		})
	}

	task, err := h.tasks.Update(c.UserContext(), taskID, service.UpdateTaskInput{
		Title:  req.Title,
		Status: req.Status,
	}, userID)
	if err != nil {
		return domainError(c, err)
	}

	logger.AuditLogger.Info("Task updated", zap.String("task_id", taskID))
	return ok(c, fiber.StatusOK, "Task updated successfully", task)
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	taskID := c.Params("id")

	if err := h.tasks.Delete(c.UserContext(), taskID, userID); err != nil {
		return domainError(c, err)
	}

	logger.AuditLogger.Info("Task deleted", zap.String("task_id", taskID))
	return c.SendStatus(fiber.StatusNoContent)
}
