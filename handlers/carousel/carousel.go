package carousel

import (
	"context"
	"time"

	rotator "github.com/edugroup/site-api/carousel"
	"github.com/edugroup/site-api/handlers"
	"github.com/edugroup/site-api/services"
	"github.com/edugroup/site-api/services/filters"
	"github.com/edugroup/site-api/utils/response"
	"github.com/edugroup/site-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ItemCounter reports how many items a public carousel currently shows
type ItemCounter func(ctx context.Context) int

// StreamConfig sets the timings of the rotator behind each stream
type StreamConfig struct {
	Interval   time.Duration
	Transition time.Duration
	KeepAlive  time.Duration
}

// CarouselHandler handles carousel image requests and the rotator stream
type CarouselHandler struct {
	svc       *services.CarouselService
	validator *validation.Validator
	counters  map[rotator.Kind]ItemCounter
	stream    StreamConfig
}

func NewCarouselHandler(svc *services.CarouselService, counters map[rotator.Kind]ItemCounter, stream StreamConfig) *CarouselHandler {
	if stream.Interval <= 0 {
		stream.Interval = rotator.DefaultInterval
	}
	if stream.KeepAlive <= 0 {
		stream.KeepAlive = 15 * time.Second
	}
	return &CarouselHandler{
		svc:       svc,
		validator: validation.NewValidator(),
		counters:  counters,
		stream:    stream,
	}
}

// MoveRequest is the body of POST /api/v1/admin/carousel/:id/move
type MoveRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

// OrderRequest is the body of PUT /api/v1/admin/carousel/order
type OrderRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1"`
}

// ListImages handles GET /api/v1/carousel
func (h *CarouselHandler) ListImages(c *fiber.Ctx) error {
	return response.Success(c, h.svc.GetCarouselImages(c.UserContext()))
}

// AdminListImages handles GET /api/v1/admin/carousel
func (h *CarouselHandler) AdminListImages(c *fiber.Ctx) error {
	f, err := filters.CarouselFromQuery(handlers.Query(c))
	if err != nil {
		return handlers.Fail(c, err)
	}

	rows := h.svc.GetAllCarouselImages(c.UserContext(), f)
	if f.Search != "" {
		rows = handlers.Keep(rows, f.Match)
	}
	return response.Success(c, rows)
}

// GetImage handles GET /api/v1/admin/carousel/:id
func (h *CarouselHandler) GetImage(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	img, err := h.svc.GetCarouselImage(c.UserContext(), id)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, img)
}

// CreateImage handles POST /api/v1/admin/carousel
func (h *CarouselHandler) CreateImage(c *fiber.Ctx) error {
	var in services.CarouselImageInput
	if err := handlers.Bind(c, h.validator, &in); err != nil {
		return handlers.Fail(c, err)
	}
	in.Title = validation.SanitizeString(in.Title)

	img, err := h.svc.CreateCarouselImage(c.UserContext(), in)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Created(c, img)
}

// UpdateImage handles PUT /api/v1/admin/carousel/:id
func (h *CarouselHandler) UpdateImage(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	var p services.CarouselImagePatch
	if err := handlers.Bind(c, h.validator, &p); err != nil {
		return handlers.Fail(c, err)
	}

	img, err := h.svc.UpdateCarouselImage(c.UserContext(), id, p)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, img)
}

// DeleteImage handles DELETE /api/v1/admin/carousel/:id
func (h *CarouselHandler) DeleteImage(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	if err := h.svc.DeleteCarouselImage(c.UserContext(), id); err != nil {
		return handlers.Fail(c, err)
	}
	return response.NoContent(c)
}

// MoveImage handles POST /api/v1/admin/carousel/:id/move and returns the
// full sequence after the swap
func (h *CarouselHandler) MoveImage(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	var req MoveRequest
	if err := handlers.Bind(c, h.validator, &req); err != nil {
		return handlers.Fail(c, err)
	}
	dir, err := services.ParseDirection(req.Direction)
	if err != nil {
		return handlers.Fail(c, err)
	}

	items, err := h.svc.ReorderCarouselImages(c.UserContext(), id, dir)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, items)
}

// SetOrder handles PUT /api/v1/admin/carousel/order. The body lists every
// image id in the new display order.
func (h *CarouselHandler) SetOrder(c *fiber.Ctx) error {
	var req OrderRequest
	if err := handlers.Bind(c, h.validator, &req); err != nil {
		return handlers.Fail(c, err)
	}
	if err := h.svc.UpsertCarouselOrder(c.UserContext(), req.IDs); err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, h.svc.GetAllCarouselImages(c.UserContext(), filters.Carousel{}))
}
