package services

import (
	"context"
	"testing"

	"github.com/edugroup/site-api/database/dbtest"
	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/services/filters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMedia(t *testing.T, svc *MediaService) {
	t.Helper()
	rows := []MediaItemInput{
		{Title: "Annual day", MediaURL: "https://cdn.example.org/media/annual.jpg", MediaType: model.MediaTypeImage, Category: "events", Featured: true},
		{Title: "Sports meet", MediaURL: "https://cdn.example.org/media/sports.jpg", MediaType: model.MediaTypeImage, Category: "sports"},
		{Title: "Campus tour", MediaURL: "https://cdn.example.org/media/tour.mp4", MediaType: model.MediaTypeVideo, Category: "campus", Featured: true},
		{Title: "Science fair", MediaURL: "https://cdn.example.org/media/fair.mp4", MediaType: model.MediaTypeVideo, Category: "events"},
		{Title: "Old banner", MediaURL: "https://cdn.example.org/media/banner.jpg", MediaType: model.MediaTypeImage, Category: "events", Featured: true, Status: model.StatusInactive},
	}
	for _, r := range rows {
		_, err := svc.CreateMediaItem(context.Background(), r)
		require.NoError(t, err)
	}
}

func mediaTitles(rows []model.MediaItem) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Title
	}
	return out
}

func TestGetMediaItemsFilters(t *testing.T) {
	ctx := context.Background()
	svc := NewMediaService(testDB(t))
	seedMedia(t, svc)

	tests := []struct {
		name string
		f    filters.Media
		want []string
	}{
		{"all", filters.Media{}, []string{"Annual day", "Sports meet", "Campus tour", "Science fair", "Old banner"}},
		{"videos", filters.Media{MediaType: ptr(model.MediaTypeVideo)}, []string{"Campus tour", "Science fair"}},
		{"category", filters.Media{Category: ptr("events")}, []string{"Annual day", "Science fair", "Old banner"}},
		{"featured images", filters.Media{MediaType: ptr(model.MediaTypeImage), Featured: ptr(true)}, []string{"Annual day", "Old banner"}},
		{"active events", filters.Media{Category: ptr("events"), Status: ptr(model.StatusActive)}, []string{"Annual day", "Science fair"}},
		{"not featured", filters.Media{Featured: ptr(false)}, []string{"Sports meet", "Science fair"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, mediaTitles(svc.GetMediaItems(ctx, tt.f)))
		})
	}
}

func TestGetFeaturedMedia(t *testing.T) {
	ctx := context.Background()
	svc := NewMediaService(testDB(t))
	seedMedia(t, svc)

	// the inactive banner is featured but never public
	assert.ElementsMatch(t, []string{"Annual day", "Campus tour"}, mediaTitles(svc.GetFeaturedMedia(ctx, 10)))
	assert.Len(t, svc.GetFeaturedMedia(ctx, 1), 1)
	assert.Len(t, svc.GetFeaturedMedia(ctx, 0), 2)
}

func TestMediaReadFailureReturnsEmpty(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := NewMediaService(db)
	seedMedia(t, svc)

	dbtest.Drop(t, db, &model.MediaItem{})

	got := svc.GetMediaItems(ctx, filters.Media{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, svc.GetFeaturedMedia(ctx, 4))
}
