package model

import (
	"time"

	"github.com/google/uuid"
)

// Institution is one school or college of the group. Code doubles as the
// public slug used by the institution pages.
type Institution struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Version         int       `gorm:"not null;default:1" json:"version"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Code            string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Address         string    `gorm:"type:text" json:"address"`
	City            string    `gorm:"type:varchar(120)" json:"city"`
	Phone           string    `gorm:"type:varchar(30)" json:"phone"`
	Email           string    `gorm:"type:varchar(255)" json:"email"`
	Website         string    `gorm:"type:varchar(255)" json:"website"`
	Description     string    `gorm:"type:text" json:"description"`
	EstablishedYear int       `json:"established_year"`
	IsActive        bool      `gorm:"not null" json:"is_active"`
}

func (Institution) TableName() string {
	return "institutions"
}
