package services

import (
	"context"
	"fmt"
	"time"

	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/services/filters"
	"github.com/edugroup/site-api/utils/htmltext"
	applog "github.com/edugroup/site-api/utils/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	entityNews = "news"

	excerptLength = 180
)

// NewsService manages news articles
type NewsService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewNewsService(db *gorm.DB) *NewsService {
	return &NewsService{db: db, now: time.Now}
}

// NewsInput creates an article. Excerpt and ReadTime are derived from Content
// when left empty.
type NewsInput struct {
	Title     string           `json:"title" validate:"required,max=255"`
	Excerpt   string           `json:"excerpt"`
	Content   string           `json:"content" validate:"required"`
	Category  string           `json:"category" validate:"max=100"`
	ImageURL  string           `json:"image_url" validate:"omitempty,url"`
	ReadTime  int              `json:"read_time" validate:"gte=0"`
	Status    model.NewsStatus `json:"status" validate:"omitempty,oneof=published draft scheduled"`
	PublishAt *time.Time       `json:"publish_at" validate:"required_if=Status scheduled"`
}

type NewsPatch struct {
	Title           *string           `json:"title" validate:"omitempty,max=255"`
	Excerpt         *string           `json:"excerpt"`
	Content         *string           `json:"content"`
	Category        *string           `json:"category" validate:"omitempty,max=100"`
	ImageURL        *string           `json:"image_url" validate:"omitempty,url"`
	ReadTime        *int              `json:"read_time" validate:"omitempty,gte=0"`
	Status          *model.NewsStatus `json:"status" validate:"omitempty,oneof=published draft scheduled"`
	PublishAt       *time.Time        `json:"publish_at"`
	ExpectedVersion *int              `json:"version"`
}

// GetPublishedNews is the public read: published articles only, newest first.
// n <= 0 returns them all.
func (s *NewsService) GetPublishedNews(ctx context.Context, f filters.News, n int) []model.News {
	f.Status = nil
	return listRows[model.News](ctx, s.db, entityNews, "published",
		where("status = ?", model.NewsStatusPublished),
		f.Apply,
		orderBy("created_at DESC"),
		limit(n))
}

// GetNewsAdmin returns articles in every status matching f, newest first
func (s *NewsService) GetNewsAdmin(ctx context.Context, f filters.News) []model.News {
	return listRows[model.News](ctx, s.db, entityNews, "list",
		f.Apply,
		orderBy("created_at DESC"))
}

func (s *NewsService) GetNews(ctx context.Context, id uuid.UUID) (*model.News, error) {
	return getRow[model.News](ctx, s.db, entityNews, id)
}

// GetPublishedArticle returns one article only when it is published
func (s *NewsService) GetPublishedArticle(ctx context.Context, id uuid.UUID) (*model.News, error) {
	n, err := s.GetNews(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.Status != model.NewsStatusPublished {
		return nil, fmt.Errorf("get %s %s: %w", entityNews, id, ErrNotFound)
	}
	return n, nil
}

func (s *NewsService) CreateNews(ctx context.Context, in NewsInput) (*model.News, error) {
	status := in.Status
	if status == "" {
		status = model.NewsStatusDraft
	}
	if status == model.NewsStatusScheduled && in.PublishAt == nil {
		return nil, fmt.Errorf("create %s: publish_at is required for scheduled news: %w", entityNews, ErrInvalidInput)
	}

	n := &model.News{
		Version:   1,
		Title:     in.Title,
		Excerpt:   in.Excerpt,
		Content:   in.Content,
		Category:  in.Category,
		ImageURL:  in.ImageURL,
		ReadTime:  in.ReadTime,
		Status:    status,
		PublishAt: in.PublishAt,
	}
	if n.Excerpt == "" {
		n.Excerpt = htmltext.Excerpt(n.Content, excerptLength)
	}
	if n.ReadTime == 0 {
		n.ReadTime = htmltext.ReadTime(n.Content)
	}
	if n.Status == model.NewsStatusPublished && n.PublishAt == nil {
		now := s.now()
		n.PublishAt = &now
	}

	if err := createRow(ctx, s.db, entityNews, n); err != nil {
		return nil, err
	}
	return n, nil
}

// UpdateNews applies p. New content refreshes the read time unless p sets
// one explicitly.
func (s *NewsService) UpdateNews(ctx context.Context, id uuid.UUID, p NewsPatch) (*model.News, error) {
	changes := patch{}
	setIf(changes, "title", p.Title)
	setIf(changes, "excerpt", p.Excerpt)
	setIf(changes, "content", p.Content)
	if p.Content != nil && p.ReadTime == nil {
		changes["read_time"] = htmltext.ReadTime(*p.Content)
	}
	setIf(changes, "category", p.Category)
	setIf(changes, "image_url", p.ImageURL)
	setIf(changes, "read_time", p.ReadTime)
	setIf(changes, "status", p.Status)
	setIf(changes, "publish_at", p.PublishAt)
	return updateRow[model.News](ctx, s.db, entityNews, id, p.ExpectedVersion, changes)
}

func (s *NewsService) DeleteNews(ctx context.Context, id uuid.UUID) error {
	return deleteRow[model.News](ctx, s.db, entityNews, id)
}

// IncrementNewsViews counts a view of a published article. Drafts and
// scheduled articles report ErrNotFound.
func (s *NewsService) IncrementNewsViews(ctx context.Context, id uuid.UUID) error {
	return increment[model.News](ctx, s.db, entityNews, id, "views", gatePublished)
}

func (s *NewsService) IncrementNewsLikes(ctx context.Context, id uuid.UUID) error {
	return increment[model.News](ctx, s.db, entityNews, id, "likes", gatePublished)
}

var gatePublished = where("status = ?", model.NewsStatusPublished)

// PublishDueNews publishes every scheduled article whose publish time has
// passed and reports how many were published
func (s *NewsService) PublishDueNews(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.News{}).
		Where("status = ? AND publish_at IS NOT NULL AND publish_at <= ?", model.NewsStatusScheduled, now).
		Updates(map[string]interface{}{
			"status":  model.NewsStatusPublished,
			"version": gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		logFailure(entityNews, "publish_due", uuid.Nil, res.Error)
		return 0, fmt.Errorf("publish scheduled news: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		applog.L().Info("published scheduled news", zap.Int64("count", res.RowsAffected))
	}
	return res.RowsAffected, nil
}
