package model

import (
	"time"

	"github.com/google/uuid"
)

type NewsStatus string

const (
	NewsStatusPublished NewsStatus = "published"
	NewsStatusDraft     NewsStatus = "draft"
	NewsStatusScheduled NewsStatus = "scheduled"
)

// News is an article of the news feed
type News struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Version   int        `gorm:"not null;default:1" json:"version"`
	Title     string     `gorm:"type:varchar(255);not null" json:"title"`
	Excerpt   string     `gorm:"type:text" json:"excerpt"`
	Content   string     `gorm:"type:text" json:"content"`
	Category  string     `gorm:"type:varchar(100);index" json:"category"`
	ImageURL  string     `gorm:"type:varchar(512)" json:"image_url"`
	ReadTime  int        `json:"read_time"` // minutes
	Status    NewsStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	PublishAt *time.Time `gorm:"index" json:"publish_at,omitempty"`
	Views     int64      `gorm:"not null;default:0" json:"views"`
	Likes     int64      `gorm:"not null;default:0" json:"likes"`
}

func (News) TableName() string {
	return "news"
}
