package services

import (
	"context"

	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/services/filters"
	applog "github.com/edugroup/site-api/utils/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const entityAchiever = "achiever"

// AchieverService manages the students showcased on the achievements pages
type AchieverService struct {
	db *gorm.DB
}

func NewAchieverService(db *gorm.DB) *AchieverService {
	return &AchieverService{db: db}
}

type AchieverInput struct {
	Name          string                 `json:"name" validate:"required,max=255"`
	Class         string                 `json:"class" validate:"max=50"`
	Category      model.AchieverCategory `json:"category" validate:"required,oneof=board_10 board_12 iit_jee neet sainik_school olympiad other"`
	Achievement   string                 `json:"achievement" validate:"required"`
	Percentage    *float64               `json:"percentage" validate:"omitempty,gte=0,lte=100"`
	Rank          *int                   `json:"rank" validate:"omitempty,gte=1"`
	ExamCleared   string                 `json:"exam_cleared" validate:"max=255"`
	PhotoURL      string                 `json:"photo_url" validate:"omitempty,url"`
	Year          int                    `json:"year" validate:"required,gte=1950,lte=2100"`
	InstitutionID *uuid.UUID             `json:"institution_id"`
	Featured      bool                   `json:"featured"`
	Status        model.Status           `json:"status" validate:"omitempty,oneof=active inactive"`
}

type AchieverPatch struct {
	Name            *string                 `json:"name" validate:"omitempty,max=255"`
	Class           *string                 `json:"class" validate:"omitempty,max=50"`
	Category        *model.AchieverCategory `json:"category" validate:"omitempty,oneof=board_10 board_12 iit_jee neet sainik_school olympiad other"`
	Achievement     *string                 `json:"achievement"`
	Percentage      *float64                `json:"percentage" validate:"omitempty,gte=0,lte=100"`
	Rank            *int                    `json:"rank" validate:"omitempty,gte=1"`
	ExamCleared     *string                 `json:"exam_cleared" validate:"omitempty,max=255"`
	PhotoURL        *string                 `json:"photo_url" validate:"omitempty,url"`
	Year            *int                    `json:"year" validate:"omitempty,gte=1950,lte=2100"`
	InstitutionID   *uuid.UUID              `json:"institution_id"`
	Featured        *bool                   `json:"featured"`
	Status          *model.Status           `json:"status" validate:"omitempty,oneof=active inactive"`
	ExpectedVersion *int                    `json:"version"`
}

// AchieverStats counts active achievers per category
type AchieverStats struct {
	Total      int64                            `json:"total"`
	ByCategory map[model.AchieverCategory]int64 `json:"by_category"`
}

// GetFeaturedAchievers returns active featured achievers, newest first
func (s *AchieverService) GetFeaturedAchievers(ctx context.Context, n int) []model.Achiever {
	return listRows[model.Achiever](ctx, s.db, entityAchiever, "featured",
		where("status = ? AND featured = ?", model.StatusActive, true),
		orderBy("created_at DESC"),
		limit(n))
}

// GetAllAchievers returns achievers matching f, newest first
func (s *AchieverService) GetAllAchievers(ctx context.Context, f filters.Achiever) []model.Achiever {
	return listRows[model.Achiever](ctx, s.db, entityAchiever, "list",
		f.Apply,
		orderBy("created_at DESC"))
}

func (s *AchieverService) GetAchieversByInstitution(ctx context.Context, institutionID uuid.UUID) []model.Achiever {
	return listRows[model.Achiever](ctx, s.db, entityAchiever, "by_institution",
		where("institution_id = ? AND status = ?", institutionID, model.StatusActive),
		orderBy("created_at DESC"))
}

func (s *AchieverService) GetAchiever(ctx context.Context, id uuid.UUID) (*model.Achiever, error) {
	return getRow[model.Achiever](ctx, s.db, entityAchiever, id)
}

func (s *AchieverService) CreateAchiever(ctx context.Context, in AchieverInput) (*model.Achiever, error) {
	a := &model.Achiever{
		Version:       1,
		Name:          in.Name,
		Class:         in.Class,
		Category:      in.Category,
		Achievement:   in.Achievement,
		Percentage:    in.Percentage,
		Rank:          in.Rank,
		ExamCleared:   in.ExamCleared,
		PhotoURL:      in.PhotoURL,
		Year:          in.Year,
		InstitutionID: in.InstitutionID,
		Featured:      in.Featured,
		Status:        statusOrActive(in.Status),
	}
	if err := createRow(ctx, s.db, entityAchiever, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AchieverService) UpdateAchiever(ctx context.Context, id uuid.UUID, p AchieverPatch) (*model.Achiever, error) {
	changes := patch{}
	setIf(changes, "name", p.Name)
	setIf(changes, "class", p.Class)
	setIf(changes, "category", p.Category)
	setIf(changes, "achievement", p.Achievement)
	setIf(changes, "percentage", p.Percentage)
	setIf(changes, "rank", p.Rank)
	setIf(changes, "exam_cleared", p.ExamCleared)
	setIf(changes, "photo_url", p.PhotoURL)
	setIf(changes, "year", p.Year)
	setIf(changes, "institution_id", p.InstitutionID)
	setIf(changes, "featured", p.Featured)
	setIf(changes, "status", p.Status)
	return updateRow[model.Achiever](ctx, s.db, entityAchiever, id, p.ExpectedVersion, changes)
}

func (s *AchieverService) DeleteAchiever(ctx context.Context, id uuid.UUID) error {
	return deleteRow[model.Achiever](ctx, s.db, entityAchiever, id)
}

// GetAchieverStats counts active achievers per category. Every category is
// present in the result, with zero when nobody holds it.
func (s *AchieverService) GetAchieverStats(ctx context.Context) AchieverStats {
	stats := AchieverStats{ByCategory: make(map[model.AchieverCategory]int64, len(model.AchieverCategories))}
	for _, c := range model.AchieverCategories {
		stats.ByCategory[c] = 0
	}

	var rows []struct {
		Category model.AchieverCategory
		Count    int64
	}
	err := s.db.WithContext(ctx).Model(&model.Achiever{}).
		Select("category, COUNT(*) AS count").
		Where("status = ?", model.StatusActive).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		applog.L().Error("read failed",
			zap.String("entity", entityAchiever),
			zap.String("op", "stats"),
			zap.Error(err))
		return stats
	}

	for _, r := range rows {
		stats.ByCategory[r.Category] = r.Count
		stats.Total += r.Count
	}
	return stats
}

func statusOrActive(s model.Status) model.Status {
	if s == "" {
		return model.StatusActive
	}
	return s
}
