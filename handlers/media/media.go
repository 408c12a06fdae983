package media

import (
	"github.com/edugroup/site-api/handlers"
	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/services"
	"github.com/edugroup/site-api/services/filters"
	"github.com/edugroup/site-api/utils/response"
	"github.com/edugroup/site-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// MediaHandler handles gallery requests
type MediaHandler struct {
	svc       *services.MediaService
	validator *validation.Validator
}

func NewMediaHandler(svc *services.MediaService) *MediaHandler {
	return &MediaHandler{
		svc:       svc,
		validator: validation.NewValidator(),
	}
}

func (h *MediaHandler) list(c *fiber.Ctx, public bool) error {
	f, err := filters.MediaFromQuery(handlers.Query(c))
	if err != nil {
		return handlers.Fail(c, err)
	}
	if public {
		active := model.StatusActive
		f.Status = &active
	}

	rows := h.svc.GetMediaItems(c.UserContext(), f)
	if f.Search != "" {
		rows = handlers.Keep(rows, f.Match)
	}
	return response.Success(c, rows)
}

// ListMedia handles GET /api/v1/media
func (h *MediaHandler) ListMedia(c *fiber.Ctx) error {
	return h.list(c, true)
}

// FeaturedMedia handles GET /api/v1/media/featured
func (h *MediaHandler) FeaturedMedia(c *fiber.Ctx) error {
	return response.Success(c, h.svc.GetFeaturedMedia(c.UserContext(), handlers.Limit(c, 6, 50)))
}

// AdminListMedia handles GET /api/v1/admin/media
func (h *MediaHandler) AdminListMedia(c *fiber.Ctx) error {
	return h.list(c, false)
}

// GetMediaItem handles GET /api/v1/admin/media/:id
func (h *MediaHandler) GetMediaItem(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	m, err := h.svc.GetMediaItem(c.UserContext(), id)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, m)
}

// CreateMediaItem handles POST /api/v1/admin/media
func (h *MediaHandler) CreateMediaItem(c *fiber.Ctx) error {
	var in services.MediaItemInput
	if err := handlers.Bind(c, h.validator, &in); err != nil {
		return handlers.Fail(c, err)
	}
	in.Title = validation.SanitizeString(in.Title)

	m, err := h.svc.CreateMediaItem(c.UserContext(), in)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Created(c, m)
}

// UpdateMediaItem handles PUT /api/v1/admin/media/:id
func (h *MediaHandler) UpdateMediaItem(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	var p services.MediaItemPatch
	if err := handlers.Bind(c, h.validator, &p); err != nil {
		return handlers.Fail(c, err)
	}

	m, err := h.svc.UpdateMediaItem(c.UserContext(), id, p)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, m)
}

// DeleteMediaItem handles DELETE /api/v1/admin/media/:id
func (h *MediaHandler) DeleteMediaItem(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	if err := h.svc.DeleteMediaItem(c.UserContext(), id); err != nil {
		return handlers.Fail(c, err)
	}
	return response.NoContent(c)
}
