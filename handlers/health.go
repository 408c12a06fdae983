package handlers

import (
	"github.com/edugroup/site-api/database"
	"github.com/edugroup/site-api/utils/logger"
	"github.com/edugroup/site-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HandleCheckHealth reports whether the API can reach its database
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(); err != nil {
		logger.L().Warn("health check failed", zap.Error(err))
		return response.ServiceUnavailable(c, "Database unavailable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
