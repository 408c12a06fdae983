package model

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser is a staff account allowed into the admin dashboard
type AdminUser struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `gorm:"not null" json:"name"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}
