package http_handler

import (
	"context"
	"net/http"

	"github.com/anthanhphan/go-fileshare/internal/server/config"
	"github.com/anthanhphan/go-fileshare/internal/server/port"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UploaderHeader carries the caller's uploader id for owner-only routes.
const UploaderHeader = "X-Uploader-Id"

type Server struct {
	app      *fiber.App
	cfg      *config.Config
	service  port.FileService
	validate *validator.Validate
}

func NewServer(cfg *config.Config, service port.FileService) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:             int(cfg.Server.BodyLimit),
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(metricsMiddleware())

	s := &Server{
		app:      app,
		cfg:      cfg,
		service:  service,
		validate: validator.New(),
	}

	// Routes
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", s.handleHealth)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api")
	api.Post("/files", s.handleCreateFile)
	api.Get("/files/:fileId", s.handleGetFile)
	api.Post("/files/:fileId/downloaded", s.handleDownloaded)
	api.Get("/files/:fileId/content", s.handleContent)
	api.Get("/files/:fileId/metrics", s.handleFileMetrics)
}

func (s *Server) Start() error {
	return s.app.Listen(s.cfg.Server.Addr)
}

// Handler exposes the routes as a net/http handler.
func (s *Server) Handler() http.Handler {
	return adaptor.FiberApp(s.app)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
	})
}
