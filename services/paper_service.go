package services

import (
	"context"

	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/services/filters"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const entityPaper = "paper"

// PaperService manages downloadable mock and past papers
type PaperService struct {
	db *gorm.DB
}

func NewPaperService(db *gorm.DB) *PaperService {
	return &PaperService{db: db}
}

type PaperInput struct {
	Subject    string           `json:"subject" validate:"required,max=120"`
	Class      string           `json:"class" validate:"max=50"`
	Year       int              `json:"year" validate:"required,gte=1950,lte=2100"`
	Type       model.PaperType  `json:"type" validate:"required,oneof=mock past"`
	Board      string           `json:"board" validate:"max=50"`
	Duration   int              `json:"duration" validate:"gte=0"`
	Marks      int              `json:"marks" validate:"gte=0"`
	Difficulty model.Difficulty `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	FileURL    string           `json:"file_url" validate:"omitempty,url"`
	PageCount  int              `json:"page_count" validate:"gte=0"`
	Status     model.Status     `json:"status" validate:"omitempty,oneof=active inactive"`
}

type PaperPatch struct {
	Subject         *string           `json:"subject" validate:"omitempty,max=120"`
	Class           *string           `json:"class" validate:"omitempty,max=50"`
	Year            *int              `json:"year" validate:"omitempty,gte=1950,lte=2100"`
	Type            *model.PaperType  `json:"type" validate:"omitempty,oneof=mock past"`
	Board           *string           `json:"board" validate:"omitempty,max=50"`
	Duration        *int              `json:"duration" validate:"omitempty,gte=0"`
	Marks           *int              `json:"marks" validate:"omitempty,gte=0"`
	Difficulty      *model.Difficulty `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	FileURL         *string           `json:"file_url" validate:"omitempty,url"`
	PageCount       *int              `json:"page_count" validate:"omitempty,gte=0"`
	Status          *model.Status     `json:"status" validate:"omitempty,oneof=active inactive"`
	ExpectedVersion *int              `json:"version"`
}

// GetPapers returns papers matching f, newest first
func (s *PaperService) GetPapers(ctx context.Context, f filters.Paper) []model.Paper {
	return listRows[model.Paper](ctx, s.db, entityPaper, "list",
		f.Apply,
		orderBy("created_at DESC"))
}

func (s *PaperService) GetPaper(ctx context.Context, id uuid.UUID) (*model.Paper, error) {
	return getRow[model.Paper](ctx, s.db, entityPaper, id)
}

func (s *PaperService) CreatePaper(ctx context.Context, in PaperInput) (*model.Paper, error) {
	p := &model.Paper{
		Version:    1,
		Subject:    in.Subject,
		Class:      in.Class,
		Year:       in.Year,
		Type:       in.Type,
		Board:      in.Board,
		Duration:   in.Duration,
		Marks:      in.Marks,
		Difficulty: in.Difficulty,
		FileURL:    in.FileURL,
		PageCount:  in.PageCount,
		Status:     statusOrActive(in.Status),
	}
	if err := createRow(ctx, s.db, entityPaper, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PaperService) UpdatePaper(ctx context.Context, id uuid.UUID, p PaperPatch) (*model.Paper, error) {
	changes := patch{}
	setIf(changes, "subject", p.Subject)
	setIf(changes, "class", p.Class)
	setIf(changes, "year", p.Year)
	setIf(changes, "type", p.Type)
	setIf(changes, "board", p.Board)
	setIf(changes, "duration", p.Duration)
	setIf(changes, "marks", p.Marks)
	setIf(changes, "difficulty", p.Difficulty)
	setIf(changes, "file_url", p.FileURL)
	setIf(changes, "page_count", p.PageCount)
	setIf(changes, "status", p.Status)
	return updateRow[model.Paper](ctx, s.db, entityPaper, id, p.ExpectedVersion, changes)
}

func (s *PaperService) DeletePaper(ctx context.Context, id uuid.UUID) error {
	return deleteRow[model.Paper](ctx, s.db, entityPaper, id)
}

func (s *PaperService) IncrementPaperDownloads(ctx context.Context, id uuid.UUID) error {
	return increment[model.Paper](ctx, s.db, entityPaper, id, "downloads", gateActive)
}
