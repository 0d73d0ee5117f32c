package http_handler

import (
	"context"
	"errors"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/filekeeper/go-files-manager/internal/config"
	"github.com/filekeeper/go-files-manager/internal/port"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// headerToken carries the session token on authenticated requests.
const headerToken = "X-Token"

type Server struct {
	app    *fiber.App
	cfg    *config.Config
	files  port.FileService
	users  port.UserService
	status port.StatusReporter
}

func NewServer(cfg *config.Config, files port.FileService, users port.UserService, status port.StatusReporter) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: cfg.App.MaxBodySize,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{
		app:    app,
		cfg:    cfg,
		files:  files,
		users:  users,
		status: status,
	}

	// Routes
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/status", s.handleStatus)
	s.app.Get("/stats", s.handleStats)

	s.app.Get("/connect", s.handleConnect)
	s.app.Get("/disconnect", s.handleDisconnect)
	s.app.Post("/users", s.handleRegister)
	s.app.Get("/users/me", s.handleMe)

	s.app.Post("/files", s.handleUpload)
	s.app.Get("/files", s.handleIndex)
	s.app.Get("/files/:id", s.handleShow)
	s.app.Put("/files/:id/publish", s.handlePublish)
	s.app.Put("/files/:id/unpublish", s.handleUnpublish)
	s.app.Get("/files/:id/data", s.handleData)
}

func (s *Server) Start() error {
	return s.app.Listen(s.cfg.Server.Addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown()
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// sendError maps service errors onto the wire taxonomy.
func (s *Server) sendError(c *fiber.Ctx, err error) error {
	var missing *port.MissingFieldError

	switch {
	case errors.As(err, &missing):
		return s.sendJSONError(c, fiber.StatusBadRequest, "Missing "+missing.Field)
	case errors.Is(err, port.ErrUnauthorized):
		return s.sendJSONError(c, fiber.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, port.ErrNotFound):
		return s.sendJSONError(c, fiber.StatusNotFound, "Not found")
	case errors.Is(err, port.ErrParentNotFound):
		return s.sendJSONError(c, fiber.StatusBadRequest, "Parent not found")
	case errors.Is(err, port.ErrParentNotFolder):
		return s.sendJSONError(c, fiber.StatusBadRequest, "Parent is not a folder")
	case errors.Is(err, port.ErrFolderHasNoData):
		return s.sendJSONError(c, fiber.StatusBadRequest, "A folder doesn't have content")
	case errors.Is(err, port.ErrInvalidData):
		return s.sendJSONError(c, fiber.StatusBadRequest, "Invalid data")
	case errors.Is(err, port.ErrEmailTaken):
		return s.sendJSONError(c, fiber.StatusBadRequest, "Already exist")
	default:
		logger.Errorw("Request failed", "path", c.Path(), "error", err.Error())
		return s.sendJSONError(c, fiber.StatusInternalServerError, "Internal error")
	}
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	redisOK, dbOK := s.status.Status(c.Context())
	return c.JSON(fiber.Map{"redis": redisOK, "db": dbOK})
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	users, files, err := s.status.Stats(c.Context())
	if err != nil {
		return s.sendError(c, err)
	}
	return c.JSON(fiber.Map{"users": users, "files": files})
}
