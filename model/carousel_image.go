package model

import (
	"time"

	"github.com/google/uuid"
)

// CarouselImage is a slide of the home page carousel. SortOrder values are
// kept dense (1..N) by every write that touches them.
type CarouselImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `gorm:"not null;default:1" json:"version"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	ImageURL  string    `gorm:"type:varchar(512);not null" json:"image_url"`
	Caption   string    `gorm:"type:text" json:"caption"`
	AltText   string    `gorm:"type:varchar(255)" json:"alt_text"`
	SortOrder int       `gorm:"not null;index" json:"sort_order"`
	Status    Status    `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
}

func (CarouselImage) TableName() string {
	return "carousel_images"
}
