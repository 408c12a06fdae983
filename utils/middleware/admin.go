package middleware

import (
	"encoding/json"
	"strings"

	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/utils/logger"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var auditActions = map[string]string{
	fiber.MethodPost:   "create",
	fiber.MethodPut:    "update",
	fiber.MethodPatch:  "update",
	fiber.MethodDelete: "delete",
}

// AdminAuditLog records successful admin mutations on resource. It must run
// after Tiers.Admin. Reads are not recorded and a failed write of the log
// entry never fails the request.
func AdminAuditLog(db *gorm.DB, resource string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		verb, mutating := auditActions[c.Method()]
		if !mutating {
			return c.Next()
		}

		// the body buffer is reused by fasthttp once the handler returns
		var newValue datatypes.JSON
		if body := c.Body(); isJSON(c) && json.Valid(body) {
			newValue = datatypes.JSON(append([]byte(nil), body...))
		}

		err := c.Next()
		if err != nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			return err
		}

		email, _ := GetAdminEmail(c)
		entry := model.AdminAuditLog{
			AdminEmail:  email,
			Action:      resource + "_" + verb,
			Resource:    resource,
			ResourceID:  c.Params("id"),
			NewValue:    newValue,
			IPAddress:   c.IP(),
			UserAgent:   c.Get(fiber.HeaderUserAgent),
			Description: c.Method() + " " + c.Path(),
		}

		if logErr := db.WithContext(c.UserContext()).Create(&entry).Error; logErr != nil {
			logger.L().Error("failed to write audit log",
				zap.String("resource", resource),
				zap.String("action", entry.Action),
				zap.Error(logErr),
			)
		}
		return nil
	}
}

func isJSON(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)
}
