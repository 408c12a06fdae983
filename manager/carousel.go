package manager

import (
	"context"

	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/services"
	"github.com/edugroup/site-api/services/filters"
	"github.com/google/uuid"
)

// CarouselManager mirrors the carousel in display order. Writes that move
// other images (create, delete, move) reload the whole list afterwards.
type CarouselManager struct {
	*Manager[model.CarouselImage, services.CarouselImageInput, services.CarouselImagePatch]
	svc CarouselStore
}

// CarouselStore is the part of the carousel service the manager needs
type CarouselStore interface {
	GetAllCarouselImages(ctx context.Context, f filters.Carousel) []model.CarouselImage
	CreateCarouselImage(ctx context.Context, in services.CarouselImageInput) (*model.CarouselImage, error)
	UpdateCarouselImage(ctx context.Context, id uuid.UUID, p services.CarouselImagePatch) (*model.CarouselImage, error)
	DeleteCarouselImage(ctx context.Context, id uuid.UUID) error
	UpsertCarouselOrder(ctx context.Context, ids []uuid.UUID) error
}

func NewCarouselManager(s CarouselStore) *CarouselManager {
	base := New[model.CarouselImage, services.CarouselImageInput, services.CarouselImagePatch](Funcs[model.CarouselImage, services.CarouselImageInput, services.CarouselImagePatch]{
		ListFn: func(ctx context.Context) []model.CarouselImage {
			return s.GetAllCarouselImages(ctx, filters.Carousel{})
		},
		CreateFn: s.CreateCarouselImage,
		UpdateFn: s.UpdateCarouselImage,
		DeleteFn: s.DeleteCarouselImage,
	}, func(r model.CarouselImage) uuid.UUID { return r.ID })

	return &CarouselManager{Manager: base, svc: s}
}

func (m *CarouselManager) Create(ctx context.Context, in services.CarouselImageInput) (*model.CarouselImage, error) {
	img, err := m.Manager.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	m.Load(ctx)
	return img, nil
}

func (m *CarouselManager) Delete(ctx context.Context, id uuid.UUID) error {
	if err := m.Manager.Delete(ctx, id); err != nil {
		return err
	}
	m.Load(ctx)
	return nil
}

// Move swaps the image with its neighbour, stores the complete sequence in
// one batched write and reloads. On failure the mirror keeps its old order.
func (m *CarouselManager) Move(ctx context.Context, id uuid.UUID, dir services.Direction) ([]model.CarouselImage, error) {
	items := m.Items(ctx)
	moved, err := services.Swap(items, id, dir)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(moved))
	for i, it := range moved {
		ids[i] = it.ID
	}
	if err := m.svc.UpsertCarouselOrder(ctx, ids); err != nil {
		return nil, err
	}
	return m.Load(ctx), nil
}
