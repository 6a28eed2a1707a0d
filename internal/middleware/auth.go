package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskboard/pkg/logger"
	"taskboard/pkg/token"
)

// Protected rejects any request that does not carry a valid bearer token.
// Missing header, malformed header, bad signature and expired token all get
// the same 401 body; the reason is only logged server-side. On success the
// claim's subject and email are stored in Locals for the handlers.
func Protected(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			logger.SecurityLogger.Warn("Missing or malformed authorization header",
				zap.String("url", c.OriginalURL()),
			)
			return unauthenticated(c)
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			logger.SecurityLogger.Warn("Token rejected",
				zap.String("url", c.OriginalURL()),
				zap.Error(err),
			)
			return unauthenticated(c)
		}

		c.Locals("userID", claims.Subject)
		c.Locals("email", claims.Email)
		return c.Next()
	}
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Unauthenticated",
		"success": false,
		"status":  fiber.StatusUnauthorized,
	})
}
