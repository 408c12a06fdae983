package update

import (
	"github.com/edugroup/site-api/handlers"
	"github.com/edugroup/site-api/services"
	"github.com/edugroup/site-api/services/filters"
	"github.com/edugroup/site-api/utils/response"
	"github.com/edugroup/site-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UpdateHandler handles quick update (announcement ticker) requests
type UpdateHandler struct {
	svc       *services.QuickUpdateService
	validator *validation.Validator
}

func NewUpdateHandler(svc *services.QuickUpdateService) *UpdateHandler {
	return &UpdateHandler{
		svc:       svc,
		validator: validation.NewValidator(),
	}
}

// ListUpdates handles GET /api/v1/updates. Without institution_id it
// returns the main site ticker.
func (h *UpdateHandler) ListUpdates(c *fiber.Ctx) error {
	raw := c.Query("institution_id")
	if raw == "" {
		return response.Success(c, h.svc.GetMainSiteUpdates(c.UserContext()))
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return response.BadRequest(c, "institution_id must be a valid id")
	}
	return response.Success(c, h.svc.GetInstitutionUpdates(c.UserContext(), id))
}

// AdminListUpdates handles GET /api/v1/admin/updates
func (h *UpdateHandler) AdminListUpdates(c *fiber.Ctx) error {
	f, err := filters.QuickUpdateFromQuery(handlers.Query(c))
	if err != nil {
		return handlers.Fail(c, err)
	}

	rows := h.svc.GetAllQuickUpdates(c.UserContext(), f)
	if f.Search != "" {
		rows = handlers.Keep(rows, f.Match)
	}
	return response.Success(c, rows)
}

// GetUpdate handles GET /api/v1/admin/updates/:id
func (h *UpdateHandler) GetUpdate(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	u, err := h.svc.GetQuickUpdate(c.UserContext(), id)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, u)
}

// CreateUpdate handles POST /api/v1/admin/updates
func (h *UpdateHandler) CreateUpdate(c *fiber.Ctx) error {
	var in services.QuickUpdateInput
	if err := handlers.Bind(c, h.validator, &in); err != nil {
		return handlers.Fail(c, err)
	}
	in.Title = validation.SanitizeString(in.Title)

	u, err := h.svc.CreateQuickUpdate(c.UserContext(), in)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Created(c, u)
}

// UpdateUpdate handles PUT /api/v1/admin/updates/:id
func (h *UpdateHandler) UpdateUpdate(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	var p services.QuickUpdatePatch
	if err := handlers.Bind(c, h.validator, &p); err != nil {
		return handlers.Fail(c, err)
	}

	u, err := h.svc.UpdateQuickUpdate(c.UserContext(), id, p)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, u)
}

// DeleteUpdate handles DELETE /api/v1/admin/updates/:id
func (h *UpdateHandler) DeleteUpdate(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	if err := h.svc.DeleteQuickUpdate(c.UserContext(), id); err != nil {
		return handlers.Fail(c, err)
	}
	return response.NoContent(c)
}
