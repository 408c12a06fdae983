package admin

import (
	"errors"

	"github.com/edugroup/site-api/handlers"
	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuditHandler serves the trail written by middleware.AdminAuditLog
type AuditHandler struct {
	db *gorm.DB
}

func NewAuditHandler(db *gorm.DB) *AuditHandler {
	return &AuditHandler{db: db}
}

// ListAuditLogs filters, each an exact match on the column of the same name
var auditFilters = [...]string{"action", "resource", "resource_id", "admin_email"}

// ListAuditLogs handles GET /api/v1/admin/audit, newest first
func (h *AuditHandler) ListAuditLogs(c *fiber.Ctx) error {
	page := max(c.QueryInt("page", 1), 1)
	limit := handlers.Limit(c, 20, 100)

	q := h.db.WithContext(c.UserContext()).Model(&model.AdminAuditLog{})
	for _, col := range auditFilters {
		if v := c.Query(col); v != "" {
			q = q.Where(col+" = ?", v)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return handlers.Fail(c, err)
	}
	var entries []model.AdminAuditLog
	err := q.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&entries).Error
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Paginated(c, entries, response.CalculatePagination(page, limit, total))
}

// GetAuditLog handles GET /api/v1/admin/audit/:id
func (h *AuditHandler) GetAuditLog(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}

	var entry model.AdminAuditLog
	err = h.db.WithContext(c.UserContext()).Where("id = ?", id).Take(&entry).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return response.NotFound(c, "Audit entry not found")
	case err != nil:
		return handlers.Fail(c, err)
	}
	return response.Success(c, entry)
}
