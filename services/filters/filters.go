// Package filters holds the per-entity filter criteria used by both the
// store queries and the in-memory admin lists. Every criterion is an
// equality predicate; set criteria are combined with AND. A filter applied
// to the store and the same filter matched against the full list in memory
// select the same rows.
package filters

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalid wraps every filter parse or validation failure
var ErrInvalid = errors.New("invalid filter")

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func check(f interface{}) error {
	validateOnce.Do(func() { validate = validator.New() })
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Getter reads one raw query parameter, returning "" when absent
type Getter func(key string) string

func stringParam[T ~string](get Getter, key string) *T {
	v := strings.TrimSpace(get(key))
	if v == "" || v == "all" {
		return nil
	}
	t := T(v)
	return &t
}

func intParam(get Getter, key string) (*int, error) {
	v := strings.TrimSpace(get(key))
	if v == "" || v == "all" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", ErrInvalid, key)
	}
	return &n, nil
}

func boolParam(get Getter, key string) (*bool, error) {
	v := strings.TrimSpace(get(key))
	if v == "" || v == "all" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be true or false", ErrInvalid, key)
	}
	return &b, nil
}

func uuidParam(get Getter, key string) (*uuid.UUID, error) {
	v := strings.TrimSpace(get(key))
	if v == "" || v == "all" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a UUID", ErrInvalid, key)
	}
	return &id, nil
}

func eq[T any](db *gorm.DB, column string, v *T) *gorm.DB {
	if v == nil {
		return db
	}
	return db.Where(column+" = ?", *v)
}

func same[T comparable](want *T, got T) bool {
	return want == nil || *want == got
}

func sameOptional(want *uuid.UUID, got *uuid.UUID) bool {
	if want == nil {
		return true
	}
	return got != nil && *got == *want
}

// containsFold reports whether any of fields contains the search text,
// ignoring case. An empty search matches everything.
func containsFold(search string, fields ...string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}
