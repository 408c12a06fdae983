package model

import (
	"time"

	"github.com/google/uuid"
)

// AchieverCategory classifies what an achiever is recognised for
type AchieverCategory string

const (
	AchieverCategoryBoard10      AchieverCategory = "board_10"
	AchieverCategoryBoard12      AchieverCategory = "board_12"
	AchieverCategoryIITJEE       AchieverCategory = "iit_jee"
	AchieverCategoryNEET         AchieverCategory = "neet"
	AchieverCategorySainikSchool AchieverCategory = "sainik_school"
	AchieverCategoryOlympiad     AchieverCategory = "olympiad"
	AchieverCategoryOther        AchieverCategory = "other"
)

// AchieverCategories lists every category in display order
var AchieverCategories = []AchieverCategory{
	AchieverCategoryBoard10,
	AchieverCategoryBoard12,
	AchieverCategoryIITJEE,
	AchieverCategoryNEET,
	AchieverCategorySainikSchool,
	AchieverCategoryOlympiad,
	AchieverCategoryOther,
}

// Achiever is a student showcased on the achievements pages
type Achiever struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt     time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	Version       int              `gorm:"not null;default:1" json:"version"`
	Name          string           `gorm:"type:varchar(255);not null" json:"name"`
	Class         string           `gorm:"type:varchar(50)" json:"class"`
	Category      AchieverCategory `gorm:"type:varchar(30);not null;index" json:"category"`
	Achievement   string           `gorm:"type:text;not null" json:"achievement"`
	Percentage    *float64         `json:"percentage,omitempty"`
	Rank          *int             `json:"rank,omitempty"`
	ExamCleared   string           `gorm:"type:varchar(255)" json:"exam_cleared"`
	PhotoURL      string           `gorm:"type:varchar(512)" json:"photo_url"`
	Year          int              `gorm:"index" json:"year"`
	InstitutionID *uuid.UUID       `gorm:"type:uuid;index" json:"institution_id,omitempty"`
	Featured      bool             `gorm:"default:false" json:"featured"`
	Status        Status           `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`

	Institution *Institution `gorm:"foreignKey:InstitutionID;constraint:OnDelete:SET NULL" json:"institution,omitempty"`
}

func (Achiever) TableName() string {
	return "achievers"
}
