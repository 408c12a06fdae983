package resource

import (
	"github.com/edugroup/site-api/handlers"
	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/services"
	"github.com/edugroup/site-api/services/filters"
	"github.com/edugroup/site-api/utils/response"
	"github.com/edugroup/site-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// ResourceHandler handles career resource requests
type ResourceHandler struct {
	svc       *services.CareerResourceService
	validator *validation.Validator
}

func NewResourceHandler(svc *services.CareerResourceService) *ResourceHandler {
	return &ResourceHandler{
		svc:       svc,
		validator: validation.NewValidator(),
	}
}

// ListResources handles GET /api/v1/resources
func (h *ResourceHandler) ListResources(c *fiber.Ctx) error {
	f, err := filters.ResourceFromQuery(handlers.Query(c))
	if err != nil {
		return handlers.Fail(c, err)
	}
	f.Status = nil

	rows := h.svc.FetchCareerResources(c.UserContext(), f)
	if f.Search != "" {
		rows = handlers.Keep(rows, f.Match)
	}
	return response.Success(c, rows)
}

// GetResource handles GET /api/v1/resources/:id
func (h *ResourceHandler) GetResource(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	r, err := h.svc.GetCareerResource(c.UserContext(), id)
	if err != nil {
		return handlers.Fail(c, err)
	}
	if r.Status != model.StatusActive {
		return response.NotFound(c, "Resource not found")
	}
	return response.Success(c, r)
}

// ViewResource handles POST /api/v1/resources/:id/view
func (h *ResourceHandler) ViewResource(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	if err := h.svc.IncrementResourceViews(c.UserContext(), id); err != nil {
		return handlers.Fail(c, err)
	}
	return response.NoContent(c)
}

// AdminListResources handles GET /api/v1/admin/resources
func (h *ResourceHandler) AdminListResources(c *fiber.Ctx) error {
	f, err := filters.ResourceFromQuery(handlers.Query(c))
	if err != nil {
		return handlers.Fail(c, err)
	}

	rows := h.svc.GetAllCareerResources(c.UserContext(), f)
	if f.Search != "" {
		rows = handlers.Keep(rows, f.Match)
	}
	return response.Success(c, rows)
}

// AdminGetResource handles GET /api/v1/admin/resources/:id
func (h *ResourceHandler) AdminGetResource(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	r, err := h.svc.GetCareerResource(c.UserContext(), id)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, r)
}

// CreateResource handles POST /api/v1/admin/resources
func (h *ResourceHandler) CreateResource(c *fiber.Ctx) error {
	var in services.CareerResourceInput
	if err := handlers.Bind(c, h.validator, &in); err != nil {
		return handlers.Fail(c, err)
	}
	in.Title = validation.SanitizeString(in.Title)

	r, err := h.svc.CreateCareerResource(c.UserContext(), in)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Created(c, r)
}

// UpdateResource handles PUT /api/v1/admin/resources/:id
func (h *ResourceHandler) UpdateResource(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	var p services.CareerResourcePatch
	if err := handlers.Bind(c, h.validator, &p); err != nil {
		return handlers.Fail(c, err)
	}

	r, err := h.svc.UpdateCareerResource(c.UserContext(), id, p)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, r)
}

// DeleteResource handles DELETE /api/v1/admin/resources/:id
func (h *ResourceHandler) DeleteResource(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	if err := h.svc.DeleteCareerResource(c.UserContext(), id); err != nil {
		return handlers.Fail(c, err)
	}
	return response.NoContent(c)
}
