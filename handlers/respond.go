package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/edugroup/site-api/services"
	"github.com/edugroup/site-api/services/filters"
	"github.com/edugroup/site-api/utils/logger"
	"github.com/edugroup/site-api/utils/response"
	"github.com/edugroup/site-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrBadRequest marks malformed requests: bad ids, bodies and filters
var ErrBadRequest = errors.New("bad request")

// GenericFailure is shown for every unexpected write failure
const GenericFailure = "Something went wrong. Please try again."

type invalidBody struct{ err error }

func (e *invalidBody) Error() string { return e.err.Error() }
func (e *invalidBody) Unwrap() error { return e.err }

// Bind parses the JSON body into dst and validates it
func Bind(c *fiber.Ctx, v *validation.Validator, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("%w: invalid request body", ErrBadRequest)
	}
	if err := v.ValidateStruct(dst); err != nil {
		return &invalidBody{err: err}
	}
	return nil
}

// ParseID reads a UUID route parameter
func ParseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s must be a valid id", ErrBadRequest, name)
	}
	return id, nil
}

// Query exposes the request query string to the filter parsers
func Query(c *fiber.Ctx) filters.Getter {
	return func(key string) string { return c.Query(key) }
}

// Limit reads the limit query parameter, falling back to def and capping at max
func Limit(c *fiber.Ctx, def, max int) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

// Keep returns the rows matched by keep. Free-text search is matched here
// rather than in the store.
func Keep[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Fail maps an error onto the response envelope
func Fail(c *fiber.Ctx, err error) error {
	var body *invalidBody
	switch {
	case errors.As(err, &body):
		return response.ValidationFailed(c, describe(body.err))
	case errors.Is(err, ErrBadRequest), errors.Is(err, filters.ErrInvalid), errors.Is(err, services.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return response.NotFound(c, "")
	case errors.Is(err, services.ErrStaleVersion):
		return response.Conflict(c, "This record was changed by someone else. Reload and try again.")
	case errors.Is(err, services.ErrDuplicate):
		return response.Conflict(c, "A record with the same unique value already exists")
	case errors.Is(err, services.ErrStorageUnavailable):
		return response.ServiceUnavailable(c, "File storage is not configured")
	}

	logger.L().Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return response.InternalServerError(c, GenericFailure)
}

func describe(err error) string {
	fields := validation.FormatValidationErrors(err)
	if len(fields) == 0 {
		return err.Error()
	}
	return validation.Join(fields)
}
