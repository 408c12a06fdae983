package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/services/filters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNewsDerivesExcerptAndReadTime(t *testing.T) {
	svc := NewNewsService(testDB(t))
	content := "<p>" + strings.Repeat("students ", 450) + "</p>"

	n, err := svc.CreateNews(context.Background(), NewsInput{Title: "Results", Content: content})
	require.NoError(t, err)

	assert.Equal(t, model.NewsStatusDraft, n.Status)
	assert.Equal(t, 3, n.ReadTime)
	assert.True(t, strings.HasSuffix(n.Excerpt, "…"))
	assert.LessOrEqual(t, len([]rune(n.Excerpt)), excerptLength+1)
	assert.Nil(t, n.PublishAt)
}

func TestScheduledNewsRequiresPublishTime(t *testing.T) {
	svc := NewNewsService(testDB(t))
	_, err := svc.CreateNews(context.Background(), NewsInput{
		Title: "Later", Content: "soon", Status: model.NewsStatusScheduled,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPublishedNewsOnly(t *testing.T) {
	ctx := context.Background()
	svc := NewNewsService(testDB(t))

	for _, in := range []NewsInput{
		{Title: "draft", Content: "x"},
		{Title: "live", Content: "x", Status: model.NewsStatusPublished, Category: "events"},
		{Title: "live-2", Content: "x", Status: model.NewsStatusPublished, Category: "results"},
	} {
		_, err := svc.CreateNews(ctx, in)
		require.NoError(t, err)
	}

	got := svc.GetPublishedNews(ctx, filters.News{}, 0)
	require.Len(t, got, 2)
	for _, n := range got {
		assert.Equal(t, model.NewsStatusPublished, n.Status)
		assert.NotNil(t, n.PublishAt)
	}

	// a status criterion cannot widen the public read
	draft := model.NewsStatusDraft
	assert.Len(t, svc.GetPublishedNews(ctx, filters.News{Status: &draft}, 0), 2)
	assert.Len(t, svc.GetPublishedNews(ctx, filters.News{Category: ptr("events")}, 0), 1)
	assert.Len(t, svc.GetPublishedNews(ctx, filters.News{}, 1), 1)
	assert.Len(t, svc.GetNewsAdmin(ctx, filters.News{}), 3)
}

func TestGetPublishedArticleHidesDrafts(t *testing.T) {
	ctx := context.Background()
	svc := NewNewsService(testDB(t))

	n, err := svc.CreateNews(ctx, NewsInput{Title: "draft", Content: "x"})
	require.NoError(t, err)

	_, err = svc.GetPublishedArticle(ctx, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewsCounters(t *testing.T) {
	ctx := context.Background()
	svc := NewNewsService(testDB(t))

	n, err := svc.CreateNews(ctx, NewsInput{Title: "live", Content: "x", Status: model.NewsStatusPublished})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.IncrementNewsViews(ctx, n.ID))
	}
	require.NoError(t, svc.IncrementNewsLikes(ctx, n.ID))

	got, err := svc.GetNews(ctx, n.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.Views)
	assert.EqualValues(t, 1, got.Likes)
	// counters do not count as edits
	assert.Equal(t, 1, got.Version)
}

func TestPublishDueNews(t *testing.T) {
	ctx := context.Background()
	svc := NewNewsService(testDB(t))
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	due, err := svc.CreateNews(ctx, NewsInput{Title: "due", Content: "x", Status: model.NewsStatusScheduled, PublishAt: ptr(now.Add(-time.Minute))})
	require.NoError(t, err)
	_, err = svc.CreateNews(ctx, NewsInput{Title: "later", Content: "x", Status: model.NewsStatusScheduled, PublishAt: ptr(now.Add(time.Hour))})
	require.NoError(t, err)

	n, err := svc.PublishDueNews(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := svc.GetNews(ctx, due.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NewsStatusPublished, got.Status)

	n, err = svc.PublishDueNews(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUpdateNewsRefreshesReadTime(t *testing.T) {
	ctx := context.Background()
	svc := NewNewsService(testDB(t))

	n, err := svc.CreateNews(ctx, NewsInput{Title: "x", Content: "short"})
	require.NoError(t, err)
	require.Equal(t, 1, n.ReadTime)

	longer := strings.Repeat("word ", 900)
	got, err := svc.UpdateNews(ctx, n.ID, NewsPatch{Content: &longer, ExpectedVersion: ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, 5, got.ReadTime)
	assert.Equal(t, 2, got.Version)
}

func TestNewsCountersSkipUnpublished(t *testing.T) {
	ctx := context.Background()
	svc := NewNewsService(testDB(t))

	draft, err := svc.CreateNews(ctx, NewsInput{Title: "draft", Content: "x"})
	require.NoError(t, err)
	scheduled, err := svc.CreateNews(ctx, NewsInput{Title: "soon", Content: "x", Status: model.NewsStatusScheduled, PublishAt: ptr(time.Now().Add(time.Hour))})
	require.NoError(t, err)

	for _, n := range []*model.News{draft, scheduled} {
		assert.ErrorIs(t, svc.IncrementNewsViews(ctx, n.ID), ErrNotFound)
		assert.ErrorIs(t, svc.IncrementNewsLikes(ctx, n.ID), ErrNotFound)

		got, err := svc.GetNews(ctx, n.ID)
		require.NoError(t, err)
		assert.Zero(t, got.Views)
		assert.Zero(t, got.Likes)
	}
}
