package services

import (
	"context"

	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/services/filters"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const entityMedia = "media_item"

// MediaService manages the media gallery
type MediaService struct {
	db *gorm.DB
}

func NewMediaService(db *gorm.DB) *MediaService {
	return &MediaService{db: db}
}

type MediaItemInput struct {
	Title       string          `json:"title" validate:"required,max=255"`
	Description string          `json:"description"`
	MediaURL    string          `json:"media_url" validate:"required,url"`
	MediaType   model.MediaType `json:"media_type" validate:"required,oneof=image video"`
	Category    string          `json:"category" validate:"max=100"`
	AltText     string          `json:"alt_text" validate:"max=255"`
	Featured    bool            `json:"featured"`
	Status      model.Status    `json:"status" validate:"omitempty,oneof=active inactive"`
}

type MediaItemPatch struct {
	Title           *string          `json:"title" validate:"omitempty,max=255"`
	Description     *string          `json:"description"`
	MediaURL        *string          `json:"media_url" validate:"omitempty,url"`
	MediaType       *model.MediaType `json:"media_type" validate:"omitempty,oneof=image video"`
	Category        *string          `json:"category" validate:"omitempty,max=100"`
	AltText         *string          `json:"alt_text" validate:"omitempty,max=255"`
	Featured        *bool            `json:"featured"`
	Status          *model.Status    `json:"status" validate:"omitempty,oneof=active inactive"`
	ExpectedVersion *int             `json:"version"`
}

// GetMediaItems returns gallery items matching f, newest first
func (s *MediaService) GetMediaItems(ctx context.Context, f filters.Media) []model.MediaItem {
	return listRows[model.MediaItem](ctx, s.db, entityMedia, "list",
		f.Apply,
		orderBy("created_at DESC"))
}

func (s *MediaService) GetFeaturedMedia(ctx context.Context, n int) []model.MediaItem {
	return listRows[model.MediaItem](ctx, s.db, entityMedia, "featured",
		where("status = ? AND featured = ?", model.StatusActive, true),
		orderBy("created_at DESC"),
		limit(n))
}

func (s *MediaService) GetMediaItem(ctx context.Context, id uuid.UUID) (*model.MediaItem, error) {
	return getRow[model.MediaItem](ctx, s.db, entityMedia, id)
}

func (s *MediaService) CreateMediaItem(ctx context.Context, in MediaItemInput) (*model.MediaItem, error) {
	m := &model.MediaItem{
		Version:     1,
		Title:       in.Title,
		Description: in.Description,
		MediaURL:    in.MediaURL,
		MediaType:   in.MediaType,
		Category:    in.Category,
		AltText:     in.AltText,
		Featured:    in.Featured,
		Status:      statusOrActive(in.Status),
	}
	if err := createRow(ctx, s.db, entityMedia, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MediaService) UpdateMediaItem(ctx context.Context, id uuid.UUID, p MediaItemPatch) (*model.MediaItem, error) {
	changes := patch{}
	setIf(changes, "title", p.Title)
	setIf(changes, "description", p.Description)
	setIf(changes, "media_url", p.MediaURL)
	setIf(changes, "media_type", p.MediaType)
	setIf(changes, "category", p.Category)
	setIf(changes, "alt_text", p.AltText)
	setIf(changes, "featured", p.Featured)
	setIf(changes, "status", p.Status)
	return updateRow[model.MediaItem](ctx, s.db, entityMedia, id, p.ExpectedVersion, changes)
}

func (s *MediaService) DeleteMediaItem(ctx context.Context, id uuid.UUID) error {
	return deleteRow[model.MediaItem](ctx, s.db, entityMedia, id)
}
