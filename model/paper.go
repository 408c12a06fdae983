package model

import (
	"time"

	"github.com/google/uuid"
)

type PaperType string

const (
	PaperTypeMock PaperType = "mock"
	PaperTypePast PaperType = "past"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Paper is a downloadable mock or past exam paper
type Paper struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Version    int        `gorm:"not null;default:1" json:"version"`
	Subject    string     `gorm:"type:varchar(120);not null;index" json:"subject"`
	Class      string     `gorm:"type:varchar(50);index" json:"class"`
	Year       int        `gorm:"index" json:"year"`
	Type       PaperType  `gorm:"type:varchar(10);not null" json:"type"`
	Board      string     `gorm:"type:varchar(50)" json:"board"`
	Duration   int        `json:"duration"` // minutes
	Marks      int        `json:"marks"`
	Difficulty Difficulty `gorm:"type:varchar(10)" json:"difficulty"`
	FileURL    string     `gorm:"type:varchar(512)" json:"file_url"`
	PageCount  int        `json:"page_count"`
	Downloads  int64      `gorm:"not null;default:0" json:"downloads"`
	Status     Status     `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
}

func (Paper) TableName() string {
	return "papers"
}
