package model

import (
	"time"

	"github.com/google/uuid"
)

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// MediaItem is an entry of the media gallery
type MediaItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `gorm:"not null;default:1" json:"version"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	MediaURL    string    `gorm:"type:varchar(512);not null" json:"media_url"`
	MediaType   MediaType `gorm:"type:varchar(10);not null" json:"media_type"`
	Category    string    `gorm:"type:varchar(100);index" json:"category"`
	AltText     string    `gorm:"type:varchar(255)" json:"alt_text"`
	Featured    bool      `gorm:"default:false" json:"featured"`
	Status      Status    `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
}

func (MediaItem) TableName() string {
	return "media_gallery"
}
