package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/services/filters"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityCarousel = "carousel_image"

// Direction moves a carousel image one place towards the front (up) or the
// back (down) of the sequence
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionUp, DirectionDown:
		return Direction(s), nil
	}
	return "", fmt.Errorf("direction %q: %w", s, ErrInvalidInput)
}

// CarouselService manages the home page carousel. Every write that touches
// the sequence leaves sort_order dense: 1..N over all images.
type CarouselService struct {
	db *gorm.DB
}

func NewCarouselService(db *gorm.DB) *CarouselService {
	return &CarouselService{db: db}
}

type CarouselImageInput struct {
	Title    string       `json:"title" validate:"required,max=255"`
	ImageURL string       `json:"image_url" validate:"required,url"`
	Caption  string       `json:"caption"`
	AltText  string       `json:"alt_text" validate:"max=255"`
	Status   model.Status `json:"status" validate:"omitempty,oneof=active inactive"`
}

type CarouselImagePatch struct {
	Title           *string       `json:"title" validate:"omitempty,max=255"`
	ImageURL        *string       `json:"image_url" validate:"omitempty,url"`
	Caption         *string       `json:"caption"`
	AltText         *string       `json:"alt_text" validate:"omitempty,max=255"`
	Status          *model.Status `json:"status" validate:"omitempty,oneof=active inactive"`
	ExpectedVersion *int          `json:"version"`
}

func bySortOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC").Order("created_at ASC")
}

// GetCarouselImages returns the active images in display order
func (s *CarouselService) GetCarouselImages(ctx context.Context) []model.CarouselImage {
	return listRows[model.CarouselImage](ctx, s.db, entityCarousel, "list_active",
		where("status = ?", model.StatusActive),
		bySortOrder)
}

// GetAllCarouselImages is the admin read, in display order
func (s *CarouselService) GetAllCarouselImages(ctx context.Context, f filters.Carousel) []model.CarouselImage {
	return listRows[model.CarouselImage](ctx, s.db, entityCarousel, "list",
		f.Apply,
		bySortOrder)
}

func (s *CarouselService) GetCarouselImage(ctx context.Context, id uuid.UUID) (*model.CarouselImage, error) {
	return getRow[model.CarouselImage](ctx, s.db, entityCarousel, id)
}

// CreateCarouselImage appends the image at the end of the sequence
func (s *CarouselService) CreateCarouselImage(ctx context.Context, in CarouselImageInput) (*model.CarouselImage, error) {
	img := &model.CarouselImage{
		Version:  1,
		Title:    in.Title,
		ImageURL: in.ImageURL,
		Caption:  in.Caption,
		AltText:  in.AltText,
		Status:   statusOrActive(in.Status),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		if err := tx.Model(&model.CarouselImage{}).
			Select("COALESCE(MAX(sort_order), 0)").
			Scan(&last).Error; err != nil {
			return err
		}
		img.SortOrder = last + 1
		return tx.Create(img).Error
	})
	if err != nil {
		err = translate(err)
		logFailure(entityCarousel, "create", uuid.Nil, err)
		return nil, fmt.Errorf("create %s: %w", entityCarousel, err)
	}
	return img, nil
}

func (s *CarouselService) UpdateCarouselImage(ctx context.Context, id uuid.UUID, p CarouselImagePatch) (*model.CarouselImage, error) {
	changes := patch{}
	setIf(changes, "title", p.Title)
	setIf(changes, "image_url", p.ImageURL)
	setIf(changes, "caption", p.Caption)
	setIf(changes, "alt_text", p.AltText)
	setIf(changes, "status", p.Status)
	return updateRow[model.CarouselImage](ctx, s.db, entityCarousel, id, p.ExpectedVersion, changes)
}

// DeleteCarouselImage removes the image and closes the gap it leaves
func (s *CarouselService) DeleteCarouselImage(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&model.CarouselImage{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		items, err := loadSequence(tx)
		if err != nil {
			return err
		}
		return saveSequence(tx, items)
	})
	if err != nil {
		err = translate(err)
		if !errors.Is(err, ErrNotFound) {
			logFailure(entityCarousel, "delete", id, err)
		}
		return fmt.Errorf("delete %s %s: %w", entityCarousel, id, err)
	}
	return nil
}

// ReorderCarouselImages swaps the image with its neighbour in the given
// direction and persists the whole sequence in one batched upsert. Moving the
// first image up or the last image down leaves the sequence unchanged.
func (s *CarouselService) ReorderCarouselImages(ctx context.Context, id uuid.UUID, dir Direction) ([]model.CarouselImage, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := loadSequence(tx)
		if err != nil {
			return err
		}

		moved, err := Swap(items, id, dir)
		if err != nil {
			return err
		}
		return saveSequence(tx, moved)
	})
	if err != nil {
		err = translate(err)
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrInvalidInput) {
			logFailure(entityCarousel, "reorder", id, err)
		}
		return nil, fmt.Errorf("reorder %s %s: %w", entityCarousel, id, err)
	}
	return s.GetAllCarouselImages(ctx, filters.Carousel{}), nil
}

// UpsertCarouselOrder stores a complete sequence: ids lists every image once,
// in display order.
func (s *CarouselService) UpsertCarouselOrder(ctx context.Context, ids []uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := loadSequence(tx)
		if err != nil {
			return err
		}
		if len(ids) != len(items) {
			return fmt.Errorf("expected %d images, got %d: %w", len(items), len(ids), ErrInvalidInput)
		}

		byID := make(map[uuid.UUID]model.CarouselImage, len(items))
		for _, it := range items {
			byID[it.ID] = it
		}
		ordered := make([]model.CarouselImage, 0, len(ids))
		for _, id := range ids {
			it, ok := byID[id]
			if !ok {
				return fmt.Errorf("image %s listed twice or unknown: %w", id, ErrInvalidInput)
			}
			delete(byID, id)
			ordered = append(ordered, it)
		}
		return saveSequence(tx, ordered)
	})
	if err != nil {
		err = translate(err)
		logFailure(entityCarousel, "upsert_order", uuid.Nil, err)
		return fmt.Errorf("upsert %s order: %w", entityCarousel, err)
	}
	return nil
}

// Swap returns a copy of items with the image id exchanged with its
// neighbour. Items must be in display order.
func Swap(items []model.CarouselImage, id uuid.UUID, dir Direction) ([]model.CarouselImage, error) {
	idx := -1
	for i, it := range items {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}

	target := idx - 1
	if dir == DirectionDown {
		target = idx + 1
	} else if dir != DirectionUp {
		return nil, fmt.Errorf("direction %q: %w", dir, ErrInvalidInput)
	}

	out := make([]model.CarouselImage, len(items))
	copy(out, items)
	if target < 0 || target >= len(out) {
		return out, nil
	}
	out[idx], out[target] = out[target], out[idx]
	return out, nil
}

func loadSequence(tx *gorm.DB) ([]model.CarouselImage, error) {
	var items []model.CarouselImage
	if err := bySortOrder(tx).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// saveSequence renumbers items 1..N in slice order and writes the rows that
// changed with a single upsert
func saveSequence(tx *gorm.DB, items []model.CarouselImage) error {
	now := time.Now()
	changed := make([]model.CarouselImage, 0, len(items))
	for i := range items {
		if items[i].SortOrder == i+1 {
			continue
		}
		items[i].SortOrder = i + 1
		items[i].UpdatedAt = now
		changed = append(changed, items[i])
	}
	if len(changed) == 0 {
		return nil
	}

	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"sort_order", "updated_at"}),
	}).Create(&changed).Error
}
