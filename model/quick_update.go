package model

import (
	"time"

	"github.com/google/uuid"
)

type UpdateType string

const (
	UpdateTypeAdmission    UpdateType = "admission"
	UpdateTypeCourse       UpdateType = "course"
	UpdateTypeScholarship  UpdateType = "scholarship"
	UpdateTypeFacility     UpdateType = "facility"
	UpdateTypeAnnouncement UpdateType = "announcement"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// QuickUpdate is a short notice for the updates feed.
//
// A nil InstitutionID scopes the update to the main site. ShowOnMain only
// matters when InstitutionID is set: it promotes the institution's update to
// the main-site feed as well.
type QuickUpdate struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Version       int        `gorm:"not null;default:1" json:"version"`
	Title         string     `gorm:"type:varchar(255);not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	Type          UpdateType `gorm:"type:varchar(20);not null" json:"type"`
	Priority      Priority   `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Link          string     `gorm:"type:varchar(512)" json:"link,omitempty"`
	InstitutionID *uuid.UUID `gorm:"type:uuid;index" json:"institution_id"`
	ShowOnMain    bool       `gorm:"default:false" json:"show_on_main"`
	Status        Status     `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`

	Institution *Institution `gorm:"foreignKey:InstitutionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (QuickUpdate) TableName() string {
	return "quick_updates"
}

// PriorityRank orders priorities high to low
func PriorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}
