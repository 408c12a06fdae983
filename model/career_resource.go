package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ResourceType string

const (
	ResourceTypeArticle ResourceType = "article"
	ResourceTypeVideo   ResourceType = "video"
	ResourceTypeGuide   ResourceType = "guide"
	ResourceTypeTool    ResourceType = "tool"
	ResourceTypeWebinar ResourceType = "webinar"
)

type ResourceLevel string

const (
	ResourceLevelBeginner     ResourceLevel = "beginner"
	ResourceLevelIntermediate ResourceLevel = "intermediate"
	ResourceLevelAdvanced     ResourceLevel = "advanced"
)

// CareerResource is guidance content for students. Deleting one only flips
// its status to "deleted"; the row stays in the store.
type CareerResource struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
	Version      int                         `gorm:"not null;default:1" json:"version"`
	Title        string                      `gorm:"type:varchar(255);not null" json:"title"`
	Description  string                      `gorm:"type:text" json:"description"`
	Category     string                      `gorm:"type:varchar(100);index" json:"category"`
	Type         ResourceType                `gorm:"type:varchar(20);not null" json:"type"`
	Difficulty   ResourceLevel               `gorm:"type:varchar(20)" json:"difficulty"`
	Tags         datatypes.JSONSlice[string] `json:"tags"`
	Author       string                      `gorm:"type:varchar(255)" json:"author"`
	ThumbnailURL string                      `gorm:"type:varchar(512)" json:"thumbnail_url,omitempty"`
	DownloadURL  string                      `gorm:"type:varchar(512)" json:"download_url,omitempty"`
	ExternalURL  string                      `gorm:"type:varchar(512)" json:"external_url,omitempty"`
	Views        int64                       `gorm:"not null;default:0" json:"views"`
	Rating       float64                     `gorm:"default:0" json:"rating"`
	Status       Status                      `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
}

func (CareerResource) TableName() string {
	return "career_resources"
}
