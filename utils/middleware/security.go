package middleware

import (
	"strings"
	"time"

	"github.com/edugroup/site-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// SecurityConfig tunes the middleware shared by every route
type SecurityConfig struct {
	// AllowedOrigins is a comma separated list of site origins
	AllowedOrigins    string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	AccessLog         bool
}

const accessLogFormat = "${time} ${status} ${method} ${path} ${latency} ip=${ip} req=${locals:requestid}\n"

// SetupSecurity installs request ids, panic recovery, headers, CORS and the
// per-client limiter, in that order
func SetupSecurity(app *fiber.App, cfg SecurityConfig) {
	app.Use(requestid.New())
	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format:     accessLogFormat,
			TimeFormat: time.RFC3339,
			TimeZone:   "UTC",
		}))
	}
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(helmet.New(helmet.Config{
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		HSTSMaxAge:         int((180 * 24 * time.Hour).Seconds()),
	}))
	app.Use(cors.New(siteCORS(cfg.AllowedOrigins)))

	if cfg.RateLimitRequests > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitRequests,
			Expiration: cfg.RateLimitWindow,
			// long-lived SSE connections are exempt
			Next: func(c *fiber.Ctx) bool {
				return strings.HasSuffix(c.Path(), "/stream")
			},
			LimitReached: func(c *fiber.Ctx) error {
				return response.TooManyRequests(c, "Slow down and retry in a minute")
			},
		}))
	}
}

// siteCORS lets the public site and admin dashboard call the API with the
// apikey header
func siteCORS(allowed string) cors.Config {
	var origins []string
	for _, o := range strings.Split(allowed, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	wildcard := len(origins) == 1 && origins[0] == "*"

	return cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     strings.Join([]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete}, ","),
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization," + HeaderAPIKey,
		AllowCredentials: !wildcard,
		MaxAge:           int(12 * time.Hour / time.Second),
	}
}
