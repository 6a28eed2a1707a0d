package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"taskboard/internal/api/v1/handlers"
	"taskboard/internal/middleware"
	wshub "taskboard/internal/websocket"
	"taskboard/pkg/token"
)

// Deps is everything the route table needs, constructed in main and passed
// down explicitly.
type Deps struct {
	Auth   *handlers.AuthHandler
	Users  *handlers.UserHandler
	Tasks  *handlers.TaskHandler
	Tokens *token.Service
	Hub    *wshub.Hub
}

func RegisterRoutes(app *fiber.App, deps Deps) {
	api := app.Group("/api/v1")

	// Auth
	api.Post("/auth/register", deps.Auth.Register)
	api.Post("/auth/login", deps.Auth.Login)

	// Profile of the authenticated user
	userRoutes := api.Group("/users", middleware.Protected(deps.Tokens))
	userRoutes.Get("/me", deps.Users.Me)
	userRoutes.Put("/me", deps.Users.UpdateMe)
	userRoutes.Delete("/me", deps.Users.DeleteMe)

	// Tasks
	taskRoutes := api.Group("/tasks", middleware.Protected(deps.Tokens))
	taskRoutes.Post("/", deps.Tasks.Create)
	taskRoutes.Get("/", deps.Tasks.List)
	taskRoutes.Get("/:id", deps.Tasks.Get)
	taskRoutes.Patch("/:id", deps.Tasks.Update)
	taskRoutes.Delete("/:id", deps.Tasks.Delete)

	// Task event stream
	if deps.Hub != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
			client := &wshub.Client{Conn: conn}
			deps.Hub.Register <- client
			defer func() {
				deps.Hub.Unregister <- client
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					break
				}
			}
		}))
	}
}
