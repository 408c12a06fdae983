// Package response writes the JSON envelope shared by every endpoint:
// {"success": bool, "data": ..., "error": {"code", "message", "details"}}.
package response

import (
	"github.com/gofiber/fiber/v2"
)

// Code is the machine readable error kind in the envelope
type Code string

const (
	CodeBadRequest      Code = "BAD_REQUEST"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeForbidden       Code = "FORBIDDEN"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeTooLarge        Code = "PAYLOAD_TOO_LARGE"
	CodeValidation      Code = "VALIDATION_ERROR"
	CodeTooManyRequests Code = "TOO_MANY_REQUESTS"
	CodeInternal        Code = "INTERNAL_ERROR"
	CodeUnavailable     Code = "SERVICE_UNAVAILABLE"
	CodeHTTP            Code = "HTTP_ERROR"
)

// Response represents a standardized API response
type Response struct {
	Success bool         `json:"success"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// PaginationMeta contains pagination metadata
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
}

// PaginatedResponse is Response with page metadata; used by the audit log
type PaginatedResponse struct {
	Success    bool           `json:"success"`
	Data       interface{}    `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Response{Success: true, Data: data})
}

func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{Success: true, Data: data})
}

// NoContent acknowledges deletes and counter bumps
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// Error writes a failure envelope
func Error(c *fiber.Ctx, status int, message string, code Code) error {
	return ErrorWithDetails(c, status, message, code, "")
}

func ErrorWithDetails(c *fiber.Ctx, status int, message string, code Code, details string) error {
	return c.Status(status).JSON(Response{
		Error: &ErrorDetail{Code: code, Message: message, Details: details},
	})
}

func or(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, or(message, "Bad request"), CodeBadRequest)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, or(message, "Unauthorized access"), CodeUnauthorized)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, or(message, "Access forbidden"), CodeForbidden)
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, or(message, "Resource not found"), CodeNotFound)
}

// Conflict covers duplicates and stale edits
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message, CodeConflict)
}

func TooManyRequests(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusTooManyRequests, or(message, "Too many requests"), CodeTooManyRequests)
}

// ValidationFailed reports rejected fields, e.g. "email is required; phone is required"
func ValidationFailed(c *fiber.Ctx, details string) error {
	return ErrorWithDetails(c, fiber.StatusUnprocessableEntity, "Validation failed", CodeValidation, details)
}

func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, or(message, "Internal server error"), CodeInternal)
}

func ServiceUnavailable(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusServiceUnavailable, or(message, "Service temporarily unavailable"), CodeUnavailable)
}

func Paginated(c *fiber.Ctx, data interface{}, pagination PaginationMeta) error {
	return c.Status(fiber.StatusOK).JSON(PaginatedResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	})
}

// CalculatePagination clamps limit to 1..100 and counts the pages
func CalculatePagination(page, limit int, total int64) PaginationMeta {
	page = max(page, 1)
	if limit < 1 {
		limit = 10
	}
	limit = min(limit, 100)

	return PaginationMeta{
		CurrentPage: page,
		PerPage:     limit,
		Total:       total,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
	}
}
