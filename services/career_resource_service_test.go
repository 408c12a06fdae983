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

func TestDeleteCareerResourceIsSoft(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := NewCareerResourceService(db)

	r, err := svc.CreateCareerResource(ctx, CareerResourceInput{
		Title: "Cracking JEE", Type: model.ResourceTypeGuide, Tags: []string{"jee", "physics"},
	})
	require.NoError(t, err)
	require.Len(t, svc.FetchCareerResources(ctx, filters.Resource{}), 1)

	require.NoError(t, svc.DeleteCareerResource(ctx, r.ID))

	assert.Empty(t, svc.FetchCareerResources(ctx, filters.Resource{}))
	assert.Empty(t, svc.GetAllCareerResources(ctx, filters.Resource{}))

	var stored model.CareerResource
	require.NoError(t, db.First(&stored, "id = ?", r.ID).Error)
	assert.Equal(t, model.StatusDeleted, stored.Status)
	assert.Equal(t, []string{"jee", "physics"}, []string(stored.Tags))

	deleted := model.StatusDeleted
	assert.Len(t, svc.GetAllCareerResources(ctx, filters.Resource{Status: &deleted}), 1)
}

func TestFetchCareerResourcesByViews(t *testing.T) {
	ctx := context.Background()
	svc := NewCareerResourceService(testDB(t))

	a, err := svc.CreateCareerResource(ctx, CareerResourceInput{Title: "a", Type: model.ResourceTypeArticle, Tags: []string{"neet"}})
	require.NoError(t, err)
	b, err := svc.CreateCareerResource(ctx, CareerResourceInput{Title: "b", Type: model.ResourceTypeVideo, Tags: []string{"jee"}})
	require.NoError(t, err)
	_, err = svc.CreateCareerResource(ctx, CareerResourceInput{Title: "c", Type: model.ResourceTypeVideo, Status: model.StatusInactive})
	require.NoError(t, err)

	require.NoError(t, svc.IncrementResourceViews(ctx, b.ID))
	require.NoError(t, svc.IncrementResourceViews(ctx, b.ID))
	require.NoError(t, svc.IncrementResourceViews(ctx, a.ID))

	got := svc.FetchCareerResources(ctx, filters.Resource{})
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Title)
	assert.EqualValues(t, 2, got[0].Views)

	video := model.ResourceTypeVideo
	got = svc.FetchCareerResources(ctx, filters.Resource{Type: &video})
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Title)

	got = svc.FetchCareerResources(ctx, filters.Resource{Tag: "NEET"})
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Title)
}

func TestIncrementMissingResource(t *testing.T) {
	svc := NewCareerResourceService(testDB(t))
	r, err := svc.CreateCareerResource(context.Background(), CareerResourceInput{Title: "a", Type: model.ResourceTypeTool})
	require.NoError(t, err)
	require.NoError(t, svc.db.Delete(&model.CareerResource{}, "id = ?", r.ID).Error)

	assert.ErrorIs(t, svc.IncrementResourceViews(context.Background(), r.ID), ErrNotFound)
}

func TestIncrementInactiveResource(t *testing.T) {
	ctx := context.Background()
	svc := NewCareerResourceService(testDB(t))
	r, err := svc.CreateCareerResource(ctx, CareerResourceInput{Title: "retired", Type: model.ResourceTypeTool, Status: model.StatusInactive})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.IncrementResourceViews(ctx, r.ID), ErrNotFound)

	got, err := svc.GetCareerResource(ctx, r.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Views)
}

func TestCareerResourceReadFailureReturnsEmpty(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := NewCareerResourceService(db)
	_, err := svc.CreateCareerResource(ctx, CareerResourceInput{Title: "a", Type: model.ResourceTypeGuide, Tags: []string{"jee"}})
	require.NoError(t, err)

	dbtest.Drop(t, db, &model.CareerResource{})

	got := svc.FetchCareerResources(ctx, filters.Resource{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
	got = svc.FetchCareerResources(ctx, filters.Resource{Tag: "jee"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
