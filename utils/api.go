package utils

import (
	"github.com/edugroup/site-api/database"
	"github.com/edugroup/site-api/utils/response"
	fiber "github.com/gofiber/fiber/v2"
)

// MakeHTTPHandleFunc binds a store-aware handler to a Fiber route
func MakeHTTPHandleFunc(handler func(c *fiber.Ctx, store database.Storage) error, store database.Storage) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		if err := handler(c, store); err != nil {
			return response.InternalServerError(c, err.Error())
		}
		return nil
	}
}
