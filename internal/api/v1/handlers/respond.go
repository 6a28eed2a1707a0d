package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskboard/internal/domain"
	"taskboard/pkg/logger"
)

func ok(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"success": true,
		"status":  status,
		"data":    data,
	})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"success": false,
		"status":  status,
	})
}

// domainError maps a domain error kind to its one status/message pair. The
// messages are fixed: two different causes behind the same kind must be
// indistinguishable from outside. Only ErrInternal carries detail, and only
// into the server-side log.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fail(c, fiber.StatusBadRequest, "Validation error")
	case errors.Is(err, domain.ErrDuplicateEmail):
		logger.SecurityLogger.Warn("Duplicate email rejected", zap.String("url", c.OriginalURL()))
		return fail(c, fiber.StatusConflict, "Email already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		logger.SecurityLogger.Warn("Invalid credentials", zap.String("url", c.OriginalURL()))
		return fail(c, fiber.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrUnauthenticated):
		return fail(c, fiber.StatusUnauthorized, "Unauthenticated")
	case errors.Is(err, domain.ErrOwnerNotFound):
		return fail(c, fiber.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "Not found")
	default:
		logger.ErrorLogger.Error("Internal error", zap.String("url", c.OriginalURL()), zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
