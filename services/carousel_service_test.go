package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/edugroup/site-api/database/dbtest"
	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/services/filters"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCarousel(t *testing.T, svc *CarouselService, n int) []model.CarouselImage {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := svc.CreateCarouselImage(context.Background(), CarouselImageInput{
			Title:    fmt.Sprintf("slide-%d", i),
			ImageURL: fmt.Sprintf("https://cdn.example.org/carousel/%d.jpg", i),
		})
		require.NoError(t, err)
	}
	return svc.GetAllCarouselImages(context.Background(), filters.Carousel{})
}

func orders(items []model.CarouselImage) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.SortOrder
	}
	return out
}

func ids(items []model.CarouselImage) []uuid.UUID {
	out := make([]uuid.UUID, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestCreateCarouselImageAppends(t *testing.T) {
	svc := NewCarouselService(testDB(t))
	items := seedCarousel(t, svc, 3)
	assert.Equal(t, []int{1, 2, 3}, orders(items))
}

func TestReorderCarouselKeepsDensePermutation(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		name string
		pos  int
		dir  Direction
		swap int
	}{
		{"middle up", 2, DirectionUp, 1},
		{"middle down", 2, DirectionDown, 3},
		{"first down", 0, DirectionDown, 1},
		{"last up", 4, DirectionUp, 3},
	} {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewCarouselService(testDB(t))
			before := seedCarousel(t, svc, 5)
			moved := before[tc.pos].ID
			other := before[tc.swap].ID

			after, err := svc.ReorderCarouselImages(ctx, moved, tc.dir)
			require.NoError(t, err)

			assert.Equal(t, []int{1, 2, 3, 4, 5}, orders(after))
			assert.Equal(t, moved, after[tc.swap].ID)
			assert.Equal(t, other, after[tc.pos].ID)
			for i := range before {
				if i != tc.pos && i != tc.swap {
					assert.Equal(t, before[i].ID, after[i].ID)
				}
			}
		})
	}
}

func TestReorderCarouselAtEdgesIsNoop(t *testing.T) {
	ctx := context.Background()
	svc := NewCarouselService(testDB(t))
	before := seedCarousel(t, svc, 3)

	after, err := svc.ReorderCarouselImages(ctx, before[0].ID, DirectionUp)
	require.NoError(t, err)
	assert.Equal(t, ids(before), ids(after))

	after, err = svc.ReorderCarouselImages(ctx, before[2].ID, DirectionDown)
	require.NoError(t, err)
	assert.Equal(t, ids(before), ids(after))
}

func TestReorderUnknownImage(t *testing.T) {
	svc := NewCarouselService(testDB(t))
	seedCarousel(t, svc, 2)

	_, err := svc.ReorderCarouselImages(context.Background(), uuid.New(), DirectionUp)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCarouselImageResequences(t *testing.T) {
	ctx := context.Background()
	svc := NewCarouselService(testDB(t))
	before := seedCarousel(t, svc, 4)

	require.NoError(t, svc.DeleteCarouselImage(ctx, before[1].ID))

	after := svc.GetAllCarouselImages(ctx, filters.Carousel{})
	assert.Equal(t, []int{1, 2, 3}, orders(after))
	assert.Equal(t, []uuid.UUID{before[0].ID, before[2].ID, before[3].ID}, ids(after))

	img, err := svc.CreateCarouselImage(ctx, CarouselImageInput{Title: "new", ImageURL: "https://cdn.example.org/n.jpg"})
	require.NoError(t, err)
	assert.Equal(t, 4, img.SortOrder)

	assert.ErrorIs(t, svc.DeleteCarouselImage(ctx, before[1].ID), ErrNotFound)
}

func TestUpsertCarouselOrder(t *testing.T) {
	ctx := context.Background()
	svc := NewCarouselService(testDB(t))
	before := seedCarousel(t, svc, 3)

	reversed := []uuid.UUID{before[2].ID, before[1].ID, before[0].ID}
	require.NoError(t, svc.UpsertCarouselOrder(ctx, reversed))

	after := svc.GetAllCarouselImages(ctx, filters.Carousel{})
	assert.Equal(t, reversed, ids(after))
	assert.Equal(t, []int{1, 2, 3}, orders(after))

	assert.ErrorIs(t, svc.UpsertCarouselOrder(ctx, reversed[:2]), ErrInvalidInput)
	assert.ErrorIs(t, svc.UpsertCarouselOrder(ctx, []uuid.UUID{before[0].ID, before[0].ID, before[1].ID}), ErrInvalidInput)
}

func TestPublicCarouselHidesInactive(t *testing.T) {
	ctx := context.Background()
	svc := NewCarouselService(testDB(t))
	before := seedCarousel(t, svc, 3)

	_, err := svc.UpdateCarouselImage(ctx, before[1].ID, CarouselImagePatch{Status: ptr(model.StatusInactive)})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{before[0].ID, before[2].ID}, ids(svc.GetCarouselImages(ctx)))
}

func TestSwap(t *testing.T) {
	items := []model.CarouselImage{{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}}
	original := ids(items)

	out, err := Swap(items, items[1].ID, DirectionUp)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{original[1], original[0], original[2]}, ids(out))
	assert.Equal(t, original, ids(items))

	_, err = Swap(items, items[1].ID, Direction("sideways"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCarouselReadFailureReturnsEmpty(t *testing.T) {
	db := testDB(t)
	svc := NewCarouselService(db)
	seedCarousel(t, svc, 2)

	dbtest.Drop(t, db, &model.CarouselImage{})

	got := svc.GetCarouselImages(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
