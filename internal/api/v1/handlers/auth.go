package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskboard/internal/service"
	"taskboard/pkg/logger"
)

type AuthHandler struct {
	auth     *service.AuthService
	validate *validator.Validate
}

func NewAuthHandler(auth *service.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{auth: auth, validate: validate}
}

// Register creates a new account.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	type RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Name     string `json:"name" validate:"required"`
		Password string `json:"password" validate:"required,min=6"`
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in register", zap.Error(err))
		return fail(c, fiber.StatusBadRequest, "Bad request")
	}

	if err := h.validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during register", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  fiber.StatusBadRequest,
		})
	}

	user, err := h.auth.SignUp(c.UserContext(), req.Email, req.Name, req.Password)
	if err != nil {
		return domainError(c, err)
	}

	logger.AuditLogger.Info("User registered", zap.String("user_id", user.ID))
	return ok(c, fiber.StatusCreated, "User created successfully", user)
}

// Login verifies credentials and returns a bearer token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in login", zap.Error(err))
		return fail(c, fiber.StatusBadRequest, "Bad request")
	}

	if err := h.validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during login", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  fiber.StatusBadRequest,
		})
	}

	accessToken, err := h.auth.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return domainError(c, err)
	}

	logger.AuditLogger.Info("Login success")
	return ok(c, fiber.StatusOK, "Login success", fiber.Map{
		"access_token": accessToken,
	})
}
