package paper

import (
	"github.com/edugroup/site-api/handlers"
	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/services"
	"github.com/edugroup/site-api/services/filters"
	"github.com/edugroup/site-api/utils/response"
	"github.com/edugroup/site-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// PaperHandler handles mock and past paper requests
type PaperHandler struct {
	svc       *services.PaperService
	validator *validation.Validator
}

func NewPaperHandler(svc *services.PaperService) *PaperHandler {
	return &PaperHandler{
		svc:       svc,
		validator: validation.NewValidator(),
	}
}

func (h *PaperHandler) list(c *fiber.Ctx, public bool) error {
	f, err := filters.PaperFromQuery(handlers.Query(c))
	if err != nil {
		return handlers.Fail(c, err)
	}
	if public {
		active := model.StatusActive
		f.Status = &active
	}

	rows := h.svc.GetPapers(c.UserContext(), f)
	if f.Search != "" {
		rows = handlers.Keep(rows, f.Match)
	}
	return response.Success(c, rows)
}

// ListPapers handles GET /api/v1/papers
func (h *PaperHandler) ListPapers(c *fiber.Ctx) error {
	return h.list(c, true)
}

// GetPaper handles GET /api/v1/papers/:id; inactive papers are not public
func (h *PaperHandler) GetPaper(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	p, err := h.svc.GetPaper(c.UserContext(), id)
	if err != nil {
		return handlers.Fail(c, err)
	}
	if p.Status != model.StatusActive {
		return response.NotFound(c, "Paper not found")
	}
	return response.Success(c, p)
}

// DownloadPaper handles POST /api/v1/papers/:id/download. It counts the
// download and returns the file location.
func (h *PaperHandler) DownloadPaper(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	p, err := h.svc.GetPaper(c.UserContext(), id)
	if err != nil {
		return handlers.Fail(c, err)
	}
	if p.Status != model.StatusActive {
		return response.NotFound(c, "Paper not found")
	}
	if err := h.svc.IncrementPaperDownloads(c.UserContext(), id); err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, fiber.Map{"file_url": p.FileURL})
}

// AdminListPapers handles GET /api/v1/admin/papers
func (h *PaperHandler) AdminListPapers(c *fiber.Ctx) error {
	return h.list(c, false)
}

// AdminGetPaper handles GET /api/v1/admin/papers/:id
func (h *PaperHandler) AdminGetPaper(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	p, err := h.svc.GetPaper(c.UserContext(), id)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, p)
}

// CreatePaper handles POST /api/v1/admin/papers
func (h *PaperHandler) CreatePaper(c *fiber.Ctx) error {
	var in services.PaperInput
	if err := handlers.Bind(c, h.validator, &in); err != nil {
		return handlers.Fail(c, err)
	}
	in.Subject = validation.SanitizeString(in.Subject)

	p, err := h.svc.CreatePaper(c.UserContext(), in)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Created(c, p)
}

// UpdatePaper handles PUT /api/v1/admin/papers/:id
func (h *PaperHandler) UpdatePaper(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	var patch services.PaperPatch
	if err := handlers.Bind(c, h.validator, &patch); err != nil {
		return handlers.Fail(c, err)
	}

	p, err := h.svc.UpdatePaper(c.UserContext(), id, patch)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, p)
}

// DeletePaper handles DELETE /api/v1/admin/papers/:id
func (h *PaperHandler) DeletePaper(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	if err := h.svc.DeletePaper(c.UserContext(), id); err != nil {
		return handlers.Fail(c, err)
	}
	return response.NoContent(c)
}
