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

func seedAchievers(t *testing.T, svc *AchieverService) {
	t.Helper()
	rows := []AchieverInput{
		{Name: "Aarav", Category: model.AchieverCategoryIITJEE, Achievement: "AIR 112", Year: 2024, Featured: true},
		{Name: "Diya", Category: model.AchieverCategoryIITJEE, Achievement: "AIR 845", Year: 2024},
		{Name: "Kabir", Category: model.AchieverCategoryIITJEE, Achievement: "AIR 1290", Year: 2023},
		{Name: "Meera", Category: model.AchieverCategoryNEET, Achievement: "AIR 301", Year: 2024, Featured: true},
		{Name: "Rohan", Category: model.AchieverCategoryBoard12, Achievement: "98.6%", Year: 2024, Percentage: ptr(98.6)},
		{Name: "Sara", Category: model.AchieverCategoryBoard10, Achievement: "99.2%", Year: 2024},
		{Name: "Vivaan", Category: model.AchieverCategoryOlympiad, Achievement: "Gold", Year: 2023},
		{Name: "Ira", Category: model.AchieverCategorySainikSchool, Achievement: "Selected", Year: 2024, Status: model.StatusInactive},
	}
	for _, r := range rows {
		_, err := svc.CreateAchiever(context.Background(), r)
		require.NoError(t, err)
	}
}

func TestGetAllAchieversFiltersByCategory(t *testing.T) {
	ctx := context.Background()
	svc := NewAchieverService(testDB(t))
	seedAchievers(t, svc)

	cat := model.AchieverCategoryIITJEE
	got := svc.GetAllAchievers(ctx, filters.Achiever{Category: &cat})
	require.Len(t, got, 3)
	for _, a := range got {
		assert.Equal(t, model.AchieverCategoryIITJEE, a.Category)
	}

	year := 2024
	got = svc.GetAllAchievers(ctx, filters.Achiever{Category: &cat, Year: &year})
	assert.Len(t, got, 2)

	assert.Len(t, svc.GetAllAchievers(ctx, filters.Achiever{}), 8)
}

func TestGetAllAchieversNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := NewAchieverService(testDB(t))
	seedAchievers(t, svc)

	got := svc.GetAllAchievers(ctx, filters.Achiever{})
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].CreatedAt.After(got[i-1].CreatedAt))
	}
}

func TestGetFeaturedAchievers(t *testing.T) {
	ctx := context.Background()
	svc := NewAchieverService(testDB(t))
	seedAchievers(t, svc)

	got := svc.GetFeaturedAchievers(ctx, 10)
	require.Len(t, got, 2)
	for _, a := range got {
		assert.True(t, a.Featured)
		assert.Equal(t, model.StatusActive, a.Status)
	}
	assert.Len(t, svc.GetFeaturedAchievers(ctx, 1), 1)
}

func TestAchieversByInstitution(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := NewAchieverService(db)
	gps := newInstitution(t, db, "gps")
	seedAchievers(t, svc)

	_, err := svc.CreateAchiever(ctx, AchieverInput{
		Name: "Nisha", Category: model.AchieverCategoryBoard12, Achievement: "97%", Year: 2024, InstitutionID: &gps.ID,
	})
	require.NoError(t, err)

	got := svc.GetAchieversByInstitution(ctx, gps.ID)
	require.Len(t, got, 1)
	assert.Equal(t, "Nisha", got[0].Name)
}

func TestGetAchieverStats(t *testing.T) {
	svc := NewAchieverService(testDB(t))
	seedAchievers(t, svc)

	stats := svc.GetAchieverStats(context.Background())
	assert.EqualValues(t, 7, stats.Total)
	assert.EqualValues(t, 3, stats.ByCategory[model.AchieverCategoryIITJEE])
	assert.EqualValues(t, 0, stats.ByCategory[model.AchieverCategorySainikSchool])
	assert.Len(t, stats.ByCategory, len(model.AchieverCategories))
}

func TestAchieverReadFailureReturnsEmpty(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := NewAchieverService(db)
	seedAchievers(t, svc)

	dbtest.Drop(t, db, &model.Achiever{})

	got := svc.GetAllAchievers(ctx, filters.Achiever{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, svc.GetFeaturedAchievers(ctx, 4))
	assert.EqualValues(t, 0, svc.GetAchieverStats(ctx).Total)
}

func TestAchieverWriteFailureReturnsError(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := NewAchieverService(db)

	dbtest.Drop(t, db, &model.Achiever{})

	_, err := svc.CreateAchiever(ctx, AchieverInput{Name: "x", Category: model.AchieverCategoryOther, Achievement: "x", Year: 2024})
	assert.Error(t, err)
}

func TestUpdateAchiever(t *testing.T) {
	ctx := context.Background()
	svc := NewAchieverService(testDB(t))

	a, err := svc.CreateAchiever(ctx, AchieverInput{Name: "Aarav", Category: model.AchieverCategoryIITJEE, Achievement: "AIR 112", Year: 2024})
	require.NoError(t, err)

	got, err := svc.UpdateAchiever(ctx, a.ID, AchieverPatch{Featured: ptr(true), Rank: ptr(112)})
	require.NoError(t, err)
	assert.True(t, got.Featured)
	require.NotNil(t, got.Rank)
	assert.Equal(t, 112, *got.Rank)
	assert.Equal(t, "AIR 112", got.Achievement)

	require.NoError(t, svc.DeleteAchiever(ctx, a.ID))
	_, err = svc.GetAchiever(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
