package api

import (
	"errors"
	"time"

	"github.com/edugroup/site-api/utils/logger"
	"github.com/edugroup/site-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// uploads carry PDFs of past papers
const bodyLimit = 210 * 1024 * 1024

type APIServer struct {
	app           *fiber.App
	listenAddress string
}

func NewAPIServer(listenAddress string) *APIServer {
	return &APIServer{
		app: fiber.New(fiber.Config{
			AppName:               "edu-group-site-api",
			BodyLimit:             bodyLimit,
			ReadTimeout:           30 * time.Second,
			DisableStartupMessage: true,
			ErrorHandler:          errorHandler,
		}),
		listenAddress: listenAddress,
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	logger.L().Info("starting API server", zap.String("address", s.listenAddress))
	return s.app.Listen(s.listenAddress)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *APIServer) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

// errorHandler keeps unmatched routes and framework errors in the response envelope
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusNotFound:
			return response.NotFound(c, "Route not found")
		case fiber.StatusRequestEntityTooLarge:
			return response.Error(c, fe.Code, "File too large", response.CodeTooLarge)
		}
		return response.Error(c, fe.Code, fe.Message, response.CodeHTTP)
	}

	logger.L().Error("unhandled request error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return response.InternalServerError(c, "Something went wrong. Please try again.")
}
