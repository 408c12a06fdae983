package services

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the addressed row does not exist
	ErrNotFound = errors.New("record not found")
	// ErrStaleVersion is returned when an update carries an expected version
	// that no longer matches the stored row
	ErrStaleVersion = errors.New("record was modified by someone else")
	// ErrDuplicate is returned when a unique column would be duplicated
	ErrDuplicate = errors.New("record already exists")
	// ErrInvalidInput is returned for requests the store would reject
	ErrInvalidInput = errors.New("invalid input")
)

// translate maps store errors onto the service sentinels
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
