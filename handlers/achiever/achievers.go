package achiever

import (
	"github.com/edugroup/site-api/handlers"
	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/services"
	"github.com/edugroup/site-api/services/filters"
	"github.com/edugroup/site-api/utils/response"
	"github.com/edugroup/site-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// AchieverHandler handles achiever requests
type AchieverHandler struct {
	svc       *services.AchieverService
	validator *validation.Validator
}

func NewAchieverHandler(svc *services.AchieverService) *AchieverHandler {
	return &AchieverHandler{
		svc:       svc,
		validator: validation.NewValidator(),
	}
}

func (h *AchieverHandler) list(c *fiber.Ctx, public bool) error {
	f, err := filters.AchieverFromQuery(handlers.Query(c))
	if err != nil {
		return handlers.Fail(c, err)
	}
	if public {
		active := model.StatusActive
		f.Status = &active
	}

	rows := h.svc.GetAllAchievers(c.UserContext(), f)
	if f.Search != "" {
		rows = handlers.Keep(rows, f.Match)
	}
	return response.Success(c, rows)
}

// ListAchievers handles GET /api/v1/achievers
func (h *AchieverHandler) ListAchievers(c *fiber.Ctx) error {
	return h.list(c, true)
}

// FeaturedAchievers handles GET /api/v1/achievers/featured
func (h *AchieverHandler) FeaturedAchievers(c *fiber.Ctx) error {
	return response.Success(c, h.svc.GetFeaturedAchievers(c.UserContext(), handlers.Limit(c, 8, 50)))
}

// AchieverStats handles GET /api/v1/achievers/stats
func (h *AchieverHandler) AchieverStats(c *fiber.Ctx) error {
	return response.Success(c, h.svc.GetAchieverStats(c.UserContext()))
}

// AdminListAchievers handles GET /api/v1/admin/achievers
func (h *AchieverHandler) AdminListAchievers(c *fiber.Ctx) error {
	return h.list(c, false)
}

// GetAchiever handles GET /api/v1/admin/achievers/:id
func (h *AchieverHandler) GetAchiever(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	a, err := h.svc.GetAchiever(c.UserContext(), id)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, a)
}

// CreateAchiever handles POST /api/v1/admin/achievers
func (h *AchieverHandler) CreateAchiever(c *fiber.Ctx) error {
	var in services.AchieverInput
	if err := handlers.Bind(c, h.validator, &in); err != nil {
		return handlers.Fail(c, err)
	}
	in.Name = validation.SanitizeString(in.Name)

	a, err := h.svc.CreateAchiever(c.UserContext(), in)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Created(c, a)
}

// UpdateAchiever handles PUT /api/v1/admin/achievers/:id
func (h *AchieverHandler) UpdateAchiever(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	var p services.AchieverPatch
	if err := handlers.Bind(c, h.validator, &p); err != nil {
		return handlers.Fail(c, err)
	}

	a, err := h.svc.UpdateAchiever(c.UserContext(), id, p)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, a)
}

// DeleteAchiever handles DELETE /api/v1/admin/achievers/:id
func (h *AchieverHandler) DeleteAchiever(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	if err := h.svc.DeleteAchiever(c.UserContext(), id); err != nil {
		return handlers.Fail(c, err)
	}
	return response.NoContent(c)
}
