package main

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"taskboard/configs"
	v1 "taskboard/internal/api/v1"
	"taskboard/internal/api/v1/handlers"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	wshub "taskboard/internal/websocket"
	"taskboard/pkg/crypto"
	"taskboard/pkg/database"
	"taskboard/pkg/logger"
	"taskboard/pkg/token"
)

func main() {
	logger.InitLoggers()
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	cfg := configs.LoadConfig()

	db, err := database.ConnectDB(cfg)
	if err != nil {
		logger.ErrorLogger.Fatal("Database connection failed", zap.Error(err))
	}
	defer db.Close()
	logger.SystemLogger.Info("Database connected")

	if err := repository.CreateTableIfNotExists(db); err != nil {
		logger.ErrorLogger.Fatal("Schema setup failed", zap.Error(err))
	}

	redisClient, err := database.ConnectRedis(cfg)
	if err != nil {
		logger.ErrorLogger.Fatal("Redis connection failed", zap.Error(err))
	}
	defer redisClient.Close()
	logger.SystemLogger.Info("Redis connected")

	// Wire the dependencies explicitly, leaves first.
	hasher := crypto.NewHasher(bcrypt.DefaultCost)
	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	userRepo := repository.NewUserRepo(db)
	taskRepo := repository.NewTaskRepo(db)

	hub := wshub.NewHub()
	go hub.Run()

	authService := service.NewAuthService(userRepo, hasher, tokens)
	userService := service.NewUserService(userRepo, hasher, redisClient)
	taskService := service.NewTaskService(taskRepo, redisClient, hub)

	validate := validator.New()

	app := fiber.New()
	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("taskboard API")
	})

	v1.RegisterRoutes(app, v1.Deps{
		Auth:   handlers.NewAuthHandler(authService, validate),
		Users:  handlers.NewUserHandler(userService, validate),
		Tasks:  handlers.NewTaskHandler(taskService, validate),
		Tokens: tokens,
		Hub:    hub,
	})

	logger.SystemLogger.Info("Application ready", zap.Int("port", cfg.Port))
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
