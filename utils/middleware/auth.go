package middleware

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/edugroup/site-api/utils/auth"
	"github.com/edugroup/site-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

const (
	// HeaderAPIKey carries the public or service credential
	HeaderAPIKey = "apikey"

	TierPublic = "public"
	TierAdmin  = "admin"

	localsTier       = "tier"
	localsAdminEmail = "admin_email"
	localsClaims     = "claims"

	// ServiceActor is recorded as the admin for requests made with the service key
	ServiceActor = "service-role"
)

// Tiers authenticates requests against the two credential tiers.
// The public tier accepts the anon key or the service key. The admin tier
// accepts an admin session token or the service key.
type Tiers struct {
	publicKey  string
	serviceKey string
	jwt        *auth.JWTManager
}

func NewTiers(publicKey, serviceKey string, jwtManager *auth.JWTManager) *Tiers {
	return &Tiers{
		publicKey:  publicKey,
		serviceKey: serviceKey,
		jwt:        jwtManager,
	}
}

func keyMatches(given, want string) bool {
	return want != "" && subtle.ConstantTimeCompare([]byte(given), []byte(want)) == 1
}

func bearer(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Public requires the anon key or the service key in the apikey header
func (t *Tiers) Public() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(HeaderAPIKey)
		if key == "" {
			return response.Unauthorized(c, "API key required")
		}
		if !keyMatches(key, t.publicKey) && !keyMatches(key, t.serviceKey) {
			return response.Unauthorized(c, "Invalid API key")
		}

		c.Locals(localsTier, TierPublic)
		return c.Next()
	}
}

// Admin requires an admin session token or the service key
func (t *Tiers) Admin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if keyMatches(c.Get(HeaderAPIKey), t.serviceKey) {
			c.Locals(localsTier, TierAdmin)
			c.Locals(localsAdminEmail, ServiceActor)
			return c.Next()
		}

		token := bearer(c)
		if token == "" {
			if c.Get(HeaderAPIKey) != "" {
				return response.Forbidden(c, "Admin access required")
			}
			return response.Unauthorized(c, "Missing authorization token")
		}

		claims, err := t.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				return response.Unauthorized(c, "Token has expired")
			}
			return response.Unauthorized(c, "Invalid token")
		}

		c.Locals(localsTier, TierAdmin)
		c.Locals(localsAdminEmail, claims.Email)
		c.Locals(localsClaims, claims)
		return c.Next()
	}
}

// GetTier returns the tier the request was authenticated for
func GetTier(c *fiber.Ctx) (string, bool) {
	tier, ok := c.Locals(localsTier).(string)
	return tier, ok
}

// GetAdminEmail returns the admin behind the request, or ServiceActor
func GetAdminEmail(c *fiber.Ctx) (string, bool) {
	email, ok := c.Locals(localsAdminEmail).(string)
	return email, ok
}

// GetClaims extracts the session claims; absent for service key requests
func GetClaims(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals(localsClaims).(*auth.Claims)
	return claims, ok
}
