package admission

import (
	"github.com/edugroup/site-api/handlers"
	"github.com/edugroup/site-api/services"
	"github.com/edugroup/site-api/services/filters"
	"github.com/edugroup/site-api/utils/middleware"
	"github.com/edugroup/site-api/utils/response"
	"github.com/edugroup/site-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// AdmissionHandler handles the public application form and its admin triage
type AdmissionHandler struct {
	svc       *services.AdmissionService
	validator *validation.Validator
	throttle  *middleware.BruteForceProtection
}

// NewAdmissionHandler creates the handler. throttle may be nil; when set
// every submission counts against the client's allowance.
func NewAdmissionHandler(svc *services.AdmissionService, throttle *middleware.BruteForceProtection) *AdmissionHandler {
	return &AdmissionHandler{
		svc:       svc,
		validator: validation.NewValidator(),
		throttle:  throttle,
	}
}

// SubmitApplication handles POST /api/v1/admissions
func (h *AdmissionHandler) SubmitApplication(c *fiber.Ctx) error {
	var in services.AdmissionInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(services.SubmissionResult{
			Success: false,
			Message: "Invalid request body",
		})
	}

	if h.throttle != nil {
		h.throttle.RecordFailedAttempt(c)
	}

	res := h.svc.SubmitAdmission(c.UserContext(), in)
	switch {
	case res.Success:
		return c.Status(fiber.StatusCreated).JSON(res)
	case res.Rejected:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(res)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(res)
	}
}

// ListApplications handles GET /api/v1/admin/admissions
func (h *AdmissionHandler) ListApplications(c *fiber.Ctx) error {
	f, err := filters.AdmissionFromQuery(handlers.Query(c))
	if err != nil {
		return handlers.Fail(c, err)
	}

	rows := h.svc.GetAdmissions(c.UserContext(), f)
	if f.Search != "" {
		rows = handlers.Keep(rows, f.Match)
	}
	return response.Success(c, rows)
}

// ApplicationStats handles GET /api/v1/admin/admissions/stats
func (h *AdmissionHandler) ApplicationStats(c *fiber.Ctx) error {
	return response.Success(c, h.svc.GetAdmissionStats(c.UserContext()))
}

// GetApplication handles GET /api/v1/admin/admissions/:id
func (h *AdmissionHandler) GetApplication(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	form, err := h.svc.GetAdmission(c.UserContext(), id)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, form)
}

// UpdateStatus handles PATCH /api/v1/admin/admissions/:id/status. Any status
// may follow any other.
func (h *AdmissionHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	var u services.AdmissionStatusUpdate
	if err := handlers.Bind(c, h.validator, &u); err != nil {
		return handlers.Fail(c, err)
	}

	form, err := h.svc.UpdateAdmissionStatus(c.UserContext(), id, u)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, form)
}

// DeleteApplication handles DELETE /api/v1/admin/admissions/:id
func (h *AdmissionHandler) DeleteApplication(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	if err := h.svc.DeleteAdmission(c.UserContext(), id); err != nil {
		return handlers.Fail(c, err)
	}
	return response.NoContent(c)
}
