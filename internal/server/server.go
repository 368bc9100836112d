package server

import (
	"log"

	"reflecto-be/internal/bootstrap"
	"reflecto-be/internal/config"
	"reflecto-be/internal/pkg/logger"
	"reflecto-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container, log logger.ILogger) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	app.Use(otelfiber.Middleware())
	app.Use(serverutils.ErrorHandlerMiddleware(log))

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.AuthController.RegisterRoutes(api)
	c.OAuthController.RegisterRoutes(api)
	c.UserController.RegisterRoutes(api)

	// The public surface registers before the protected notebook group
	// so /notebook/v1/public never hits the auth middleware.
	c.PublicNotebookController.RegisterRoutes(api)
	c.NotebookController.RegisterRoutes(api)
	c.EntryController.RegisterRoutes(api)
	c.TagController.RegisterRoutes(api)

	c.ChatController.RegisterRoutes(api)
	c.SubmissionController.RegisterRoutes(api)
	c.SystemController.RegisterRoutes(api)

	c.NotificationHandler.RegisterRoutes(api)
	app.Get("/ws/notifications", c.NotificationHandler.ServeWs)
}
