package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"sertifikat-identitas/internal/config"
	"sertifikat-identitas/internal/handler"
	"sertifikat-identitas/internal/middleware"
	"sertifikat-identitas/internal/repository"
	"sertifikat-identitas/internal/service"
	"sertifikat-identitas/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (document upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/logout", h.Auth.Logout)
	authGroup.Get("/verify-email", h.Auth.VerifyEmail)
	authGroup.Post("/resend-verification", h.Auth.ResendVerification)

	protected := v1.Group("", middleware.AuthRequired(authService))

	protected.Get("/me", h.Auth.Me)

	requirements := protected.Group("/requirements")
	requirements.Get("/", h.Requirement.ListActive)

	applications := protected.Group("/applications")
	applications.Post("/", h.Application.Create)
	applications.Get("/", h.Application.List)
	applications.Get("/:applicationId", h.Application.Get)
	applications.Post("/:applicationId/submit", h.Application.Submit)
	applications.Post("/:applicationId/documents", h.Document.Upload)
	applications.Get("/:applicationId/documents", h.Document.ListByApplication)

	documents := protected.Group("/documents")
	documents.Get("/:documentId", h.Document.Get)

	reapplications := protected.Group("/reapplications")
	reapplications.Get("/eligible", h.Reapplication.ListEligible)
	reapplications.Get("/", h.Reapplication.ListRecords)
	reapplications.Get("/:applicationId/plan", h.Reapplication.Preview)
	reapplications.Post("/:applicationId/commit", h.Reapplication.Commit)

	review := protected.Group("/review", middleware.RequireRole("officer"))
	review.Post("/applications/:applicationId", h.Review.ReviewApplication)
	review.Post("/documents/:documentId", h.Review.ReviewDocument)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:notificationId/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	audit := protected.Group("/audit", middleware.RequireRole("admin"))
	audit.Get("/", h.Audit.List)
	audit.Get("/:entityType/:entityId", h.Audit.ListByEntity)
}
