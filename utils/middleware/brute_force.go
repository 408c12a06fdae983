package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/edugroup/site-api/utils/logger"
	"github.com/edugroup/site-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AttemptStore is the counter store behind brute force protection.
// cache.RedisCache and cache.LocalCache both satisfy it.
type AttemptStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
	Increment(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Lockout is one step of the progressive lockout ladder
type Lockout struct {
	After    int64
	Duration time.Duration
}

// DefaultLockouts applies to admin login: 5 failures lock for 2 minutes,
// 10 for an hour and 25 for a day.
var DefaultLockouts = []Lockout{
	{After: 25, Duration: 24 * time.Hour},
	{After: 10, Duration: time.Hour},
	{After: 5, Duration: 2 * time.Minute},
}

// BruteForceProtection counts failed attempts per client IP and locks the
// client out once a threshold is reached
type BruteForceProtection struct {
	store    AttemptStore
	scope    string
	window   time.Duration
	lockouts []Lockout
}

// NewBruteForceProtection creates a protection instance for one endpoint.
// scope keeps the counters of different endpoints apart.
func NewBruteForceProtection(store AttemptStore, scope string) *BruteForceProtection {
	return &BruteForceProtection{
		store:    store,
		scope:    scope,
		window:   15 * time.Minute,
		lockouts: DefaultLockouts,
	}
}

// WithLockouts replaces the lockout ladder; steps must be ordered by
// descending threshold
func (b *BruteForceProtection) WithLockouts(window time.Duration, lockouts []Lockout) *BruteForceProtection {
	b.window = window
	b.lockouts = lockouts
	return b
}

func (b *BruteForceProtection) attemptKey(ip string) string {
	return fmt.Sprintf("brute_force:%s:attempts:%s", b.scope, ip)
}

func (b *BruteForceProtection) lockKey(ip string) string {
	return fmt.Sprintf("brute_force:%s:lock:%s", b.scope, ip)
}

// CheckAndRecordAttempt rejects locked-out clients with 429
func (b *BruteForceProtection) CheckAndRecordAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lockKey := b.lockKey(c.IP())

		locked, err := b.store.Exists(c.UserContext(), lockKey)
		if err != nil {
			// An unavailable store must not block legitimate users
			logger.L().Warn("brute force check failed", zap.String("scope", b.scope), zap.Error(err))
			return c.Next()
		}

		if locked {
			ttl, _ := b.store.TTL(c.UserContext(), lockKey)
			retryAfter := int(ttl.Seconds())
			if retryAfter <= 0 {
				retryAfter = 60
			}

			c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%d", retryAfter))
			return response.TooManyRequests(c, fmt.Sprintf("Too many failed attempts. Try again in %d seconds", retryAfter))
		}

		return c.Next()
	}
}

// RecordFailedAttempt counts a failure and applies the matching lockout
func (b *BruteForceProtection) RecordFailedAttempt(c *fiber.Ctx) {
	ctx := c.UserContext()
	ip := c.IP()
	attemptKey := b.attemptKey(ip)

	attempts, err := b.store.Increment(ctx, attemptKey)
	if err != nil {
		logger.L().Warn("failed to record attempt", zap.String("scope", b.scope), zap.Error(err))
		return
	}

	if attempts == 1 {
		_ = b.store.Expire(ctx, attemptKey, b.window)
	}

	for _, l := range b.lockouts {
		if attempts >= l.After {
			if err := b.store.Set(ctx, b.lockKey(ip), "locked", l.Duration); err != nil {
				logger.L().Warn("failed to apply lockout", zap.String("scope", b.scope), zap.Error(err))
			}
			logger.L().Info("client locked out",
				zap.String("scope", b.scope),
				zap.String("ip", ip),
				zap.Int64("attempts", attempts),
				zap.Duration("duration", l.Duration),
			)
			return
		}
	}
}

// RecordSuccessfulAttempt clears failed attempts on successful login
func (b *BruteForceProtection) RecordSuccessfulAttempt(c *fiber.Ctx) {
	ip := c.IP()
	_ = b.store.Delete(c.UserContext(), b.attemptKey(ip), b.lockKey(ip))
}

// IsLocked reports whether ip is currently locked out
func (b *BruteForceProtection) IsLocked(ctx context.Context, ip string) (bool, error) {
	return b.store.Exists(ctx, b.lockKey(ip))
}
