package news

import (
	"github.com/edugroup/site-api/handlers"
	"github.com/edugroup/site-api/services"
	"github.com/edugroup/site-api/services/filters"
	"github.com/edugroup/site-api/utils/response"
	"github.com/edugroup/site-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// NewsHandler handles news article requests
type NewsHandler struct {
	svc       *services.NewsService
	validator *validation.Validator
}

func NewNewsHandler(svc *services.NewsService) *NewsHandler {
	return &NewsHandler{
		svc:       svc,
		validator: validation.NewValidator(),
	}
}

// ListNews handles GET /api/v1/news
func (h *NewsHandler) ListNews(c *fiber.Ctx) error {
	f, err := filters.NewsFromQuery(handlers.Query(c))
	if err != nil {
		return handlers.Fail(c, err)
	}
	f.Status = nil

	n := handlers.Limit(c, 12, 100)
	if f.Search == "" {
		return response.Success(c, h.svc.GetPublishedNews(c.UserContext(), f, n))
	}

	// search runs over every published article before the limit applies
	rows := handlers.Keep(h.svc.GetPublishedNews(c.UserContext(), f, 0), f.Match)
	if len(rows) > n {
		rows = rows[:n]
	}
	return response.Success(c, rows)
}

// GetArticle handles GET /api/v1/news/:id
func (h *NewsHandler) GetArticle(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	n, err := h.svc.GetPublishedArticle(c.UserContext(), id)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, n)
}

// ViewArticle handles POST /api/v1/news/:id/view. Unpublished articles are
// not found.
func (h *NewsHandler) ViewArticle(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	if err := h.svc.IncrementNewsViews(c.UserContext(), id); err != nil {
		return handlers.Fail(c, err)
	}
	return response.NoContent(c)
}

// LikeArticle handles POST /api/v1/news/:id/like
func (h *NewsHandler) LikeArticle(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	if err := h.svc.IncrementNewsLikes(c.UserContext(), id); err != nil {
		return handlers.Fail(c, err)
	}
	return response.NoContent(c)
}

// AdminListNews handles GET /api/v1/admin/news
func (h *NewsHandler) AdminListNews(c *fiber.Ctx) error {
	f, err := filters.NewsFromQuery(handlers.Query(c))
	if err != nil {
		return handlers.Fail(c, err)
	}

	rows := h.svc.GetNewsAdmin(c.UserContext(), f)
	if f.Search != "" {
		rows = handlers.Keep(rows, f.Match)
	}
	return response.Success(c, rows)
}

// AdminGetArticle handles GET /api/v1/admin/news/:id
func (h *NewsHandler) AdminGetArticle(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	n, err := h.svc.GetNews(c.UserContext(), id)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, n)
}

// CreateArticle handles POST /api/v1/admin/news
func (h *NewsHandler) CreateArticle(c *fiber.Ctx) error {
	var in services.NewsInput
	if err := handlers.Bind(c, h.validator, &in); err != nil {
		return handlers.Fail(c, err)
	}
	in.Title = validation.SanitizeString(in.Title)

	n, err := h.svc.CreateNews(c.UserContext(), in)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Created(c, n)
}

// UpdateArticle handles PUT /api/v1/admin/news/:id
func (h *NewsHandler) UpdateArticle(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	var p services.NewsPatch
	if err := handlers.Bind(c, h.validator, &p); err != nil {
		return handlers.Fail(c, err)
	}

	n, err := h.svc.UpdateNews(c.UserContext(), id, p)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, n)
}

// DeleteArticle handles DELETE /api/v1/admin/news/:id
func (h *NewsHandler) DeleteArticle(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	if err := h.svc.DeleteNews(c.UserContext(), id); err != nil {
		return handlers.Fail(c, err)
	}
	return response.NoContent(c)
}
