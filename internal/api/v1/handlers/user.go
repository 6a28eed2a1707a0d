package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskboard/internal/service"
	"taskboard/pkg/logger"
)

// UserHandler serves the authenticated user's own profile. The target is
// always the token's subject; there is no way to address another user.
type UserHandler struct {
	users    *service.UserService
	validate *validator.Validate
}

func NewUserHandler(users *service.UserService, validate *validator.Validate) *UserHandler {
	return &UserHandler{users: users, validate: validate}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	user, err := h.users.Me(c.UserContext(), userID)
	if err != nil {
		return domainError(c, err)
	}
	return ok(c, fiber.StatusOK, "User found", user)
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	type UpdateUserRequest struct {
		Email    *string `json:"email" validate:"omitempty,email"`
		Name     *string `json:"name" validate:"omitempty,min=1"`
		Password *string `json:"password" validate:"omitempty,min=6"`
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update user", zap.Error(err))
		return fail(c, fiber.StatusBadRequest, "Bad request")
	}

	if err := h.validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during update user", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  fiber.StatusBadRequest,
		})
	}

	user, err := h.users.Update(c.UserContext(), userID, service.UpdateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return domainError(c, err)
	}

	logger.AuditLogger.Info("User updated", zap.String("user_id", userID))
	return ok(c, fiber.StatusOK, "User updated successfully", user)
}

func (h *UserHandler) DeleteMe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	if err := h.users.Delete(c.UserContext(), userID); err != nil {
		return domainError(c, err)
	}

	logger.AuditLogger.Info("User deleted", zap.String("user_id", userID))
	return c.SendStatus(fiber.StatusNoContent)
}
