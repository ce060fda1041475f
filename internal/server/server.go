// Package server exposes the match engine over HTTP. It is a thin
// boundary: validation, error mapping and response shaping only; all
// scoring happens in the match package.
package server

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/skyhire/matchengine/match"
	"go.uber.org/zap"
)

// Server wires the fiber app around a match service.
type Server struct {
	app      *fiber.App
	svc      *match.Service
	logger   *zap.Logger
	validate *validator.Validate
}

// New builds the HTTP server and registers all routes.
func New(svc *match.Service, logger *zap.Logger) *Server {
	s := &Server{
		svc:      svc,
		logger:   logger,
		validate: validator.New(),
	}
	s.app = fiber.New(fiber.Config{
		AppName: "matchengine",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(ErrorResponse{Error: err.Error()})
		},
	})
	s.app.Use(recover.New())
	s.app.Use(s.requestID)
	s.app.Use(s.requestLog)

	s.app.Get("/health", s.handleHealth)
	s.app.Post("/analyze", s.handleAnalyze)
	s.app.Post("/analyze/batch", s.handleBatch)
	s.app.Post("/report", s.handleReport)
	return s
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

const requestIDHeader = "X-Request-Id"

func (s *Server) requestID(c *fiber.Ctx) error {
	id := c.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Locals("request_id", id)
	c.Set(requestIDHeader, id)
	return c.Next()
}

func (s *Server) requestLog(c *fiber.Ctx) error {
	err := c.Next()
	s.logger.Info("request",
		zap.String("request_id", requestIDFrom(c)),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
	)
	return err
}

func requestIDFrom(c *fiber.Ctx) string {
	if id, ok := c.Locals("request_id").(string); ok {
		return id
	}
	return ""
}

// mapError translates engine errors to HTTP status codes: empty input is
// a client validation problem, an unavailable embedding capability is a
// retryable upstream failure.
func mapError(err error) *fiber.Error {
	switch {
	case errors.Is(err, match.ErrEmptyInput):
		return fiber.NewError(fiber.StatusUnprocessableEntity, "insufficient text: "+err.Error())
	case errors.Is(err, match.ErrInvalidConfig):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, match.ErrEmbeddingUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
