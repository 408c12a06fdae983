package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/edugroup/site-api/handlers"
	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/utils/auth"
	"github.com/edugroup/site-api/utils/middleware"
	"github.com/edugroup/site-api/utils/response"
	"github.com/edugroup/site-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthHandler signs admin staff into the dashboard
type AuthHandler struct {
	db                   *gorm.DB
	jwtManager           *auth.JWTManager
	validator            *validation.Validator
	bruteForceProtection *middleware.BruteForceProtection
}

// NewAuthHandler creates a new auth handler. bruteForceProtection may be nil.
func NewAuthHandler(db *gorm.DB, jwtManager *auth.JWTManager, bruteForceProtection *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		db:                   db,
		jwtManager:           jwtManager,
		validator:            validation.NewValidator(),
		bruteForceProtection: bruteForceProtection,
	}
}

// LoginRequest represents an admin login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminResponse is the public view of an admin account
type AdminResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Admin     AdminResponse `json:"admin"`
}

// Login handles POST /api/v1/admin/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := handlers.Bind(c, h.validator, &req); err != nil {
		return handlers.Fail(c, err)
	}

	var admin model.AdminUser
	err := h.db.WithContext(c.UserContext()).
		Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).
		First(&admin).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return handlers.Fail(c, err)
		}
		// unknown accounts count against the client too
		h.failed(c)
		return response.Unauthorized(c, "Invalid email or password")
	}

	if err := auth.VerifyPassword(admin.PasswordHash, req.Password); err != nil {
		h.failed(c)
		return response.Unauthorized(c, "Invalid email or password")
	}

	if h.bruteForceProtection != nil {
		h.bruteForceProtection.RecordSuccessfulAttempt(c)
	}

	token, expiresAt, err := h.jwtManager.GenerateAdminToken(admin.ID, admin.Email)
	if err != nil {
		return handlers.Fail(c, err)
	}

	return response.Success(c, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Admin:     AdminResponse{ID: admin.ID, Email: admin.Email, Name: admin.Name},
	})
}

// Me handles GET /api/v1/admin/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	email, ok := middleware.GetAdminEmail(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	if email == middleware.ServiceActor {
		return response.Success(c, AdminResponse{Email: email, Name: "Service"})
	}

	var admin model.AdminUser
	if err := h.db.WithContext(c.UserContext()).Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Admin not found")
		}
		return handlers.Fail(c, err)
	}
	return response.Success(c, AdminResponse{ID: admin.ID, Email: admin.Email, Name: admin.Name})
}

func (h *AuthHandler) failed(c *fiber.Ctx) {
	if h.bruteForceProtection != nil {
		h.bruteForceProtection.RecordFailedAttempt(c)
	}
}
