package services

import (
	"context"
	"fmt"

	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/services/filters"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const entityResource = "career_resource"

// CareerResourceService manages career guidance content. Resources are never
// removed from the store: deleting one flips its status to "deleted".
type CareerResourceService struct {
	db *gorm.DB
}

func NewCareerResourceService(db *gorm.DB) *CareerResourceService {
	return &CareerResourceService{db: db}
}

type CareerResourceInput struct {
	Title        string              `json:"title" validate:"required,max=255"`
	Description  string              `json:"description"`
	Category     string              `json:"category" validate:"max=100"`
	Type         model.ResourceType  `json:"type" validate:"required,oneof=article video guide tool webinar"`
	Difficulty   model.ResourceLevel `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Tags         []string            `json:"tags" validate:"max=20,dive,max=50"`
	Author       string              `json:"author" validate:"max=255"`
	ThumbnailURL string              `json:"thumbnail_url" validate:"omitempty,url"`
	DownloadURL  string              `json:"download_url" validate:"omitempty,url"`
	ExternalURL  string              `json:"external_url" validate:"omitempty,url"`
	Rating       float64             `json:"rating" validate:"gte=0,lte=5"`
	Status       model.Status        `json:"status" validate:"omitempty,oneof=active inactive"`
}

type CareerResourcePatch struct {
	Title           *string              `json:"title" validate:"omitempty,max=255"`
	Description     *string              `json:"description"`
	Category        *string              `json:"category" validate:"omitempty,max=100"`
	Type            *model.ResourceType  `json:"type" validate:"omitempty,oneof=article video guide tool webinar"`
	Difficulty      *model.ResourceLevel `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Tags            *[]string            `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	Author          *string              `json:"author" validate:"omitempty,max=255"`
	ThumbnailURL    *string              `json:"thumbnail_url" validate:"omitempty,url"`
	DownloadURL     *string              `json:"download_url" validate:"omitempty,url"`
	ExternalURL     *string              `json:"external_url" validate:"omitempty,url"`
	Rating          *float64             `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Status          *model.Status        `json:"status" validate:"omitempty,oneof=active inactive"`
	ExpectedVersion *int                 `json:"version"`
}

// FetchCareerResources returns active resources matching f, most viewed
// first. A status in f is ignored: this is the public read.
func (s *CareerResourceService) FetchCareerResources(ctx context.Context, f filters.Resource) []model.CareerResource {
	f.Status = nil
	rows := listRows[model.CareerResource](ctx, s.db, entityResource, "fetch",
		where("status = ?", model.StatusActive),
		f.Apply,
		orderBy("views DESC"),
		orderBy("created_at DESC"))
	return matchTag(rows, f.Tag)
}

// GetAllCareerResources is the admin read: every resource that has not been
// deleted, unless f asks for a status explicitly.
func (s *CareerResourceService) GetAllCareerResources(ctx context.Context, f filters.Resource) []model.CareerResource {
	scopes := []scope{f.Apply, orderBy("created_at DESC")}
	if f.Status == nil {
		scopes = append(scopes, where("status <> ?", model.StatusDeleted))
	}
	rows := listRows[model.CareerResource](ctx, s.db, entityResource, "list", scopes...)
	return matchTag(rows, f.Tag)
}

func (s *CareerResourceService) GetCareerResource(ctx context.Context, id uuid.UUID) (*model.CareerResource, error) {
	return getRow[model.CareerResource](ctx, s.db, entityResource, id)
}

func (s *CareerResourceService) CreateCareerResource(ctx context.Context, in CareerResourceInput) (*model.CareerResource, error) {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	r := &model.CareerResource{
		Version:      1,
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		Type:         in.Type,
		Difficulty:   in.Difficulty,
		Tags:         datatypes.JSONSlice[string](tags),
		Author:       in.Author,
		ThumbnailURL: in.ThumbnailURL,
		DownloadURL:  in.DownloadURL,
		ExternalURL:  in.ExternalURL,
		Rating:       in.Rating,
		Status:       statusOrActive(in.Status),
	}
	if err := createRow(ctx, s.db, entityResource, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *CareerResourceService) UpdateCareerResource(ctx context.Context, id uuid.UUID, p CareerResourcePatch) (*model.CareerResource, error) {
	changes := patch{}
	setIf(changes, "title", p.Title)
	setIf(changes, "description", p.Description)
	setIf(changes, "category", p.Category)
	setIf(changes, "type", p.Type)
	setIf(changes, "difficulty", p.Difficulty)
	if p.Tags != nil {
		changes["tags"] = datatypes.JSONSlice[string](*p.Tags)
	}
	setIf(changes, "author", p.Author)
	setIf(changes, "thumbnail_url", p.ThumbnailURL)
	setIf(changes, "download_url", p.DownloadURL)
	setIf(changes, "external_url", p.ExternalURL)
	setIf(changes, "rating", p.Rating)
	setIf(changes, "status", p.Status)
	return updateRow[model.CareerResource](ctx, s.db, entityResource, id, p.ExpectedVersion, changes)
}

// DeleteCareerResource marks the resource deleted. The row stays in the store
// and drops out of every public read.
func (s *CareerResourceService) DeleteCareerResource(ctx context.Context, id uuid.UUID) error {
	_, err := updateRow[model.CareerResource](ctx, s.db, entityResource, id, nil, patch{"status": model.StatusDeleted})
	if err != nil {
		return fmt.Errorf("delete %s: %w", entityResource, err)
	}
	return nil
}

func (s *CareerResourceService) IncrementResourceViews(ctx context.Context, id uuid.UUID) error {
	return increment[model.CareerResource](ctx, s.db, entityResource, id, "views", gateActive)
}

func matchTag(rows []model.CareerResource, tag string) []model.CareerResource {
	if tag == "" {
		return rows
	}
	f := filters.Resource{Tag: tag}
	out := make([]model.CareerResource, 0, len(rows))
	for _, r := range rows {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
