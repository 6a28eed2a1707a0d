package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/pkg/logger"
	"taskboard/pkg/token"
)

func TestMain(m *testing.M) {
	logger.InitLoggers()
	defer logger.SyncLoggers()
	os.Exit(m.Run())
}

func newGuardedApp(tokens *token.Service) *fiber.App {
	app := fiber.New()
	app.Get("/protected", Protected(tokens), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("userID"),
			"email":   c.Locals("email"),
		})
	})
	return app
}

func TestProtectedRejectsMissingAndMalformedHeaders(t *testing.T) {
	tokens := token.NewService("test-secret", time.Hour)
	app := newGuardedApp(tokens)

	headers := []string{
		"",
		"Bearer",
		"Basic dXNlcjpwYXNz",
		"Bearer not-a-token",
	}
	for _, header := range headers {
		req := httptest.NewRequest("GET", "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

func TestProtectedRejectsExpiredToken(t *testing.T) {
	tokens := token.NewService("test-secret", 0)
	signed, err := tokens.Issue("user-123", "u@x.com")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	app := newGuardedApp(tokens)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedAttachesIdentity(t *testing.T) {
	tokens := token.NewService("test-secret", time.Hour)
	signed, err := tokens.Issue("user-123", "u@x.com")
	require.NoError(t, err)

	app := newGuardedApp(tokens)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "user-123", body["user_id"])
	assert.Equal(t, "u@x.com", body["email"])
}
