package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	v1 "taskboard/internal/api/v1"
	"taskboard/internal/api/v1/handlers"
	"taskboard/internal/middleware"
	"taskboard/internal/service"
	"taskboard/internal/service/servicetest"
	"taskboard/pkg/crypto"
	"taskboard/pkg/logger"
	"taskboard/pkg/token"
)

func TestMain(m *testing.M) {
	logger.InitLoggers()
	defer logger.SyncLoggers()
	os.Exit(m.Run())
}

func newTestApp() *fiber.App {
	users := servicetest.NewUserStore()
	tasks := servicetest.NewTaskStore(users)

	hasher := crypto.NewHasher(bcrypt.MinCost)
	tokens := token.NewService("test-secret", time.Hour)
	validate := validator.New()

	app := fiber.New()
	app.Use(middleware.ErrorHandler())
	v1.RegisterRoutes(app, v1.Deps{
		Auth:   handlers.NewAuthHandler(service.NewAuthService(users, hasher, tokens), validate),
		Users:  handlers.NewUserHandler(service.NewUserService(users, hasher, nil), validate),
		Tasks:  handlers.NewTaskHandler(service.NewTaskService(tasks, nil, nil), validate),
		Tokens: tokens,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, bearer string, payload interface{}) (int, map[string]interface{}, string) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp.StatusCode, decoded, string(raw)
}

func registerAndLogin(t *testing.T, app *fiber.App, email string) (bearer, userID string) {
	t.Helper()

	status, _, _ := doJSON(t, app, "POST", "/api/v1/auth/register", "", map[string]string{
		"email":    email,
		"name":     "Test User",
		"password": "Secret123!",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body, _ := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "Secret123!",
	})
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	bearer = data["access_token"].(string)
	require.NotEmpty(t, bearer)

	status, body, _ = doJSON(t, app, "GET", "/api/v1/users/me", bearer, nil)
	require.Equal(t, http.StatusOK, status)
	userID = body["data"].(map[string]interface{})["id"].(string)
	require.NotEmpty(t, userID)
	return bearer, userID
}

func TestRegisterNeverLeaksPasswordHash(t *testing.T) {
	app := newTestApp()

	status, body, raw := doJSON(t, app, "POST", "/api/v1/auth/register", "", map[string]string{
		"email":    "u@x.com",
		"name":     "U",
		"password": "Secret123!",
	})
	require.Equal(t, http.StatusCreated, status)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "u@x.com", data["email"])
	assert.NotEmpty(t, data["id"])
	assert.NotContains(t, raw, "password")
	assert.NotContains(t, raw, "Secret123!")
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp()

	status, _, _ := doJSON(t, app, "POST", "/api/v1/auth/register", "", map[string]string{
		"email":    "not-an-email",
		"name":     "U",
		"password": "Secret123!",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _, _ = doJSON(t, app, "POST", "/api/v1/auth/register", "", map[string]string{
		"email":    "u@x.com",
		"name":     "U",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	app := newTestApp()

	status, _, _ := doJSON(t, app, "POST", "/api/v1/auth/register", "", map[string]string{
		"email": "A@x.com", "name": "A", "password": "Secret123!",
	})
	require.Equal(t, http.StatusCreated, status)

	status, _, _ = doJSON(t, app, "POST", "/api/v1/auth/register", "", map[string]string{
		"email": "a@x.com", "name": "A2", "password": "Secret123!",
	})
	assert.Equal(t, http.StatusConflict, status)
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	app := newTestApp()
	registerAndLogin(t, app, "existing@x.com")

	missingStatus, _, missingBody := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]string{
		"email": "missing@x.com", "password": "anything1",
	})
	wrongStatus, _, wrongBody := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]string{
		"email": "existing@x.com", "password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, missingStatus)
	assert.Equal(t, http.StatusUnauthorized, wrongStatus)
	assert.Equal(t, missingBody, wrongBody, "missing user and wrong password must return identical responses")
}

func TestTasksRequireAuthentication(t *testing.T) {
	app := newTestApp()

	for _, route := range []struct{ method, path string }{
		{"GET", "/api/v1/tasks/"},
		{"POST", "/api/v1/tasks/"},
		{"GET", "/api/v1/tasks/some-id"},
		{"PATCH", "/api/v1/tasks/some-id"},
		{"DELETE", "/api/v1/tasks/some-id"},
	} {
		status, _, _ := doJSON(t, app, route.method, route.path, "", map[string]string{"title": "T"})
		assert.Equal(t, http.StatusUnauthorized, status, "%s %s", route.method, route.path)
	}
}

func TestTaskLifecycle(t *testing.T) {
	app := newTestApp()
	bearer, userID := registerAndLogin(t, app, "u@x.com")

	// Create
	status, body, _ := doJSON(t, app, "POST", "/api/v1/tasks/", bearer, map[string]string{
		"title": "T",
	})
	require.Equal(t, http.StatusCreated, status)
	task := body["data"].(map[string]interface{})
	taskID := task["id"].(string)
	assert.Equal(t, userID, task["owner_id"], "owner must be the token subject")
	assert.Equal(t, "TODO", task["status"])

	// List contains exactly that task
	status, body, _ = doJSON(t, app, "GET", "/api/v1/tasks/", bearer, nil)
	require.Equal(t, http.StatusOK, status)
	listed := body["data"].([]interface{})
	require.Len(t, listed, 1)
	assert.Equal(t, taskID, listed[0].(map[string]interface{})["id"])

	// Update: alias "completed" maps to DONE
	status, body, _ = doJSON(t, app, "PATCH", "/api/v1/tasks/"+taskID, bearer, map[string]string{
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "DONE", body["data"].(map[string]interface{})["status"])

	// Update: bogus status ignored, title still applies
	status, body, _ = doJSON(t, app, "PATCH", "/api/v1/tasks/"+taskID, bearer, map[string]string{
		"title":  "T2",
		"status": "bogus",
	})
	require.Equal(t, http.StatusOK, status)
	updated := body["data"].(map[string]interface{})
	assert.Equal(t, "T2", updated["title"])
	assert.Equal(t, "DONE", updated["status"])

	// Delete, then the id is gone
	status, _, _ = doJSON(t, app, "DELETE", "/api/v1/tasks/"+taskID, bearer, nil)
	require.Equal(t, http.StatusNoContent, status)

	status, _, _ = doJSON(t, app, "GET", "/api/v1/tasks/"+taskID, bearer, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestOwnershipOpacityOverHTTP(t *testing.T) {
	app := newTestApp()
	bearerA, _ := registerAndLogin(t, app, "a@x.com")
	bearerB, _ := registerAndLogin(t, app, "b@x.com")

	status, body, _ := doJSON(t, app, "POST", "/api/v1/tasks/", bearerA, map[string]string{
		"title": "private",
	})
	require.Equal(t, http.StatusCreated, status)
	taskID := body["data"].(map[string]interface{})["id"].(string)

	// B probing A's task and probing a nonexistent id must be identical.
	getStatus, _, getBody := doJSON(t, app, "GET", "/api/v1/tasks/"+taskID, bearerB, nil)
	missingStatus, _, missingBody := doJSON(t, app, "GET", "/api/v1/tasks/no-such-id", bearerB, nil)
	assert.Equal(t, http.StatusNotFound, getStatus)
	assert.Equal(t, http.StatusNotFound, missingStatus)
	assert.Equal(t, missingBody, getBody)

	patchStatus, _, _ := doJSON(t, app, "PATCH", "/api/v1/tasks/"+taskID, bearerB, map[string]string{"title": "stolen"})
	assert.Equal(t, http.StatusNotFound, patchStatus)

	deleteStatus, _, _ := doJSON(t, app, "DELETE", "/api/v1/tasks/"+taskID, bearerB, nil)
	assert.Equal(t, http.StatusNotFound, deleteStatus)

	// Untouched for the owner.
	status, body, _ = doJSON(t, app, "GET", "/api/v1/tasks/"+taskID, bearerA, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "private", body["data"].(map[string]interface{})["title"])
}

func TestListIsScopedToOwner(t *testing.T) {
	app := newTestApp()
	bearerA, _ := registerAndLogin(t, app, "a@x.com")
	bearerB, _ := registerAndLogin(t, app, "b@x.com")

	for i := 0; i < 3; i++ {
		status, _, _ := doJSON(t, app, "POST", "/api/v1/tasks/", bearerA, map[string]string{
			"title": fmt.Sprintf("task-%d", i),
		})
		require.Equal(t, http.StatusCreated, status)
	}

	status, body, _ := doJSON(t, app, "GET", "/api/v1/tasks/", bearerB, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["data"].([]interface{}))

	status, body, _ = doJSON(t, app, "GET", "/api/v1/tasks/", bearerA, nil)
	require.Equal(t, http.StatusOK, status)
	listed := body["data"].([]interface{})
	require.Len(t, listed, 3)
	// Newest first.
	assert.Equal(t, "task-2", listed[0].(map[string]interface{})["title"])
	assert.Equal(t, "task-0", listed[2].(map[string]interface{})["title"])
}

func TestProfileUpdateAndViewsNeverLeakHash(t *testing.T) {
	app := newTestApp()
	bearer, _ := registerAndLogin(t, app, "u@x.com")

	status, body, raw := doJSON(t, app, "PUT", "/api/v1/users/me", bearer, map[string]string{
		"name":     "Renamed",
		"password": "NewSecret123!",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Renamed", body["data"].(map[string]interface{})["name"])
	assert.NotContains(t, raw, "password")
	assert.False(t, strings.Contains(raw, "$2a$"), "bcrypt hash must never appear in a response")

	// The new password works, the old one does not.
	status, _, _ = doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]string{
		"email": "u@x.com", "password": "NewSecret123!",
	})
	assert.Equal(t, http.StatusOK, status)
	status, _, _ = doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]string{
		"email": "u@x.com", "password": "Secret123!",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestDeleteAccount(t *testing.T) {
	app := newTestApp()
	bearer, _ := registerAndLogin(t, app, "u@x.com")

	status, _, _ := doJSON(t, app, "DELETE", "/api/v1/users/me", bearer, nil)
	require.Equal(t, http.StatusNoContent, status)

	// The token still verifies, but the account is gone.
	status, _, _ = doJSON(t, app, "GET", "/api/v1/users/me", bearer, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _, _ = doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]string{
		"email": "u@x.com", "password": "Secret123!",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}
