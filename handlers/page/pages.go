package page

import (
	"github.com/edugroup/site-api/handlers"
	"github.com/edugroup/site-api/services"
	"github.com/edugroup/site-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// PageHandler serves the composed data of each public page in one response
type PageHandler struct {
	svc *services.PageService
}

func NewPageHandler(svc *services.PageService) *PageHandler {
	return &PageHandler{svc: svc}
}

// Home handles GET /api/v1/pages/home
func (h *PageHandler) Home(c *fiber.Ctx) error {
	return response.Success(c, h.svc.HomePage(c.UserContext()))
}

// Achievements handles GET /api/v1/pages/achievements
func (h *PageHandler) Achievements(c *fiber.Ctx) error {
	return response.Success(c, h.svc.AchievementsPage(c.UserContext()))
}

// Admissions handles GET /api/v1/pages/admissions
func (h *PageHandler) Admissions(c *fiber.Ctx) error {
	return response.Success(c, h.svc.AdmissionsPage(c.UserContext()))
}

// Institution handles GET /api/v1/pages/institutions/:code
func (h *PageHandler) Institution(c *fiber.Ctx) error {
	page, err := h.svc.InstitutionPage(c.UserContext(), c.Params("code"))
	if err != nil {
		return handlers.Fail(c, err)
	}
	return response.Success(c, page)
}
