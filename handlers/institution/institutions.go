package institution

import (
	"github.com/edugroup/site-api/handlers"
	"github.com/edugroup/site-api/services"
	"github.com/edugroup/site-api/utils/response"
	"github.com/edugroup/site-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// InstitutionHandler handles institution requests
type InstitutionHandler struct {
	svc       *services.InstitutionService
	validator *validation.Validator
}

func NewInstitutionHandler(svc *services.InstitutionService) *InstitutionHandler {
	return &InstitutionHandler{
		svc:       svc,
		validator: validation.NewValidator(),
	}
}

// ListInstitutions handles GET /api/v1/institutions
func (h *InstitutionHandler) ListInstitutions(c *fiber.Ctx) error {
	return response.Success(c, h.svc.ListInstitutions(c.UserContext(), true))
}

// GetInstitution handles GET /api/v1/institutions/:code
func (h *InstitutionHandler) GetInstitution(c *fiber.Ctx) error {
	inst, err := h.svc.GetInstitutionByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, inst)
}

// AdminListInstitutions handles GET /api/v1/admin/institutions
func (h *InstitutionHandler) AdminListInstitutions(c *fiber.Ctx) error {
	rows := h.svc.ListInstitutions(c.UserContext(), false)
	return response.Success(c, rows)
}

// AdminGetInstitution handles GET /api/v1/admin/institutions/:id
func (h *InstitutionHandler) AdminGetInstitution(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	inst, err := h.svc.GetInstitution(c.UserContext(), id)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, inst)
}

// CreateInstitution handles POST /api/v1/admin/institutions
func (h *InstitutionHandler) CreateInstitution(c *fiber.Ctx) error {
	var in services.InstitutionInput
	if err := handlers.Bind(c, h.validator, &in); err != nil {
		return handlers.Fail(c, err)
	}
	in.Name = validation.SanitizeString(in.Name)

	inst, err := h.svc.CreateInstitution(c.UserContext(), in)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Created(c, inst)
}

// UpdateInstitution handles PUT /api/v1/admin/institutions/:id
func (h *InstitutionHandler) UpdateInstitution(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	var p services.InstitutionPatch
	if err := handlers.Bind(c, h.validator, &p); err != nil {
		return handlers.Fail(c, err)
	}

	inst, err := h.svc.UpdateInstitution(c.UserContext(), id, p)
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, inst)
}

// DeleteInstitution handles DELETE /api/v1/admin/institutions/:id
func (h *InstitutionHandler) DeleteInstitution(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return handlers.Fail(c, err)
	}
	if err := h.svc.DeleteInstitution(c.UserContext(), id); err != nil {
		return handlers.Fail(c, err)
	}
	return response.NoContent(c)
}
