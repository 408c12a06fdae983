package upload

import (
	"fmt"
	"io"

	"github.com/edugroup/site-api/handlers"
	"github.com/edugroup/site-api/services"
	"github.com/edugroup/site-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// UploadHandler accepts files from the admin dashboard and returns their URL
type UploadHandler struct {
	svc *services.UploadService
}

func NewUploadHandler(svc *services.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// Upload handles POST /api/v1/admin/uploads (multipart: file, target)
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	target, err := services.ParseUploadTarget(c.FormValue("target"))
	if err != nil {
		return handlers.Fail(c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "A file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return handlers.Fail(c, fmt.Errorf("open upload: %w", err))
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return handlers.Fail(c, fmt.Errorf("read upload: %w", err))
	}

	res, err := h.svc.Upload(c.UserContext(), target, data)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Created(c, res)
}
