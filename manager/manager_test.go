package manager

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/edugroup/site-api/database/dbtest"
	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/services"
	"github.com/edugroup/site-api/services/filters"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStore = errors.New("store unavailable")

func TestMirrorFollowsSuccessfulWrites(t *testing.T) {
	ctx := context.Background()
	m := NewAchieverManager(services.NewAchieverService(dbtest.Open(t)))
	assert.Empty(t, m.Items(ctx))

	a, err := m.Create(ctx, services.AchieverInput{Name: "Aarav", Category: model.AchieverCategoryIITJEE, Achievement: "AIR 112", Year: 2024})
	require.NoError(t, err)
	b, err := m.Create(ctx, services.AchieverInput{Name: "Meera", Category: model.AchieverCategoryNEET, Achievement: "AIR 301", Year: 2024})
	require.NoError(t, err)

	items := m.Items(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, b.ID, items[0].ID)

	featured := true
	_, err = m.Update(ctx, a.ID, services.AchieverPatch{Featured: &featured})
	require.NoError(t, err)
	got, ok := m.Get(a.ID)
	require.True(t, ok)
	assert.True(t, got.Featured)

	require.NoError(t, m.Delete(ctx, b.ID))
	assert.Len(t, m.Items(ctx), 1)

	// the mirror agrees with a fresh read of the store
	assert.Equal(t, m.Items(ctx), m.Load(ctx))
}

func TestMirrorUnchangedOnFailedWrites(t *testing.T) {
	ctx := context.Background()
	existing := model.News{ID: uuid.New(), Title: "kept"}

	m := New[model.News, services.NewsInput, services.NewsPatch](Funcs[model.News, services.NewsInput, services.NewsPatch]{
		ListFn: func(context.Context) []model.News { return []model.News{existing} },
		CreateFn: func(context.Context, services.NewsInput) (*model.News, error) {
			return nil, errStore
		},
		UpdateFn: func(context.Context, uuid.UUID, services.NewsPatch) (*model.News, error) {
			return nil, errStore
		},
		DeleteFn: func(context.Context, uuid.UUID) error { return errStore },
	}, func(n model.News) uuid.UUID { return n.ID })

	before := m.Load(ctx)

	_, err := m.Create(ctx, services.NewsInput{Title: "new"})
	assert.ErrorIs(t, err, errStore)

	title := "changed"
	_, err = m.Update(ctx, existing.ID, services.NewsPatch{Title: &title})
	assert.ErrorIs(t, err, errStore)

	assert.ErrorIs(t, m.Delete(ctx, existing.ID), errStore)

	assert.Equal(t, before, m.Items(ctx))
}

func TestFilteredUsesCriteria(t *testing.T) {
	ctx := context.Background()
	m := NewAchieverManager(services.NewAchieverService(dbtest.Open(t)))

	for i, cat := range []model.AchieverCategory{model.AchieverCategoryIITJEE, model.AchieverCategoryNEET, model.AchieverCategoryIITJEE} {
		_, err := m.Create(ctx, services.AchieverInput{
			Name: fmt.Sprintf("student-%d", i), Category: cat, Achievement: "ranked", Year: 2024,
		})
		require.NoError(t, err)
	}

	jee := model.AchieverCategoryIITJEE
	assert.Len(t, m.Filtered(ctx, filters.Achiever{Category: &jee}), 2)
	assert.Len(t, m.Filtered(ctx, filters.Achiever{Search: "STUDENT-1"}), 1)
	assert.Len(t, m.Filtered(ctx, filters.Achiever{}), 3)
}

func TestAdmissionMirrorTracksStatus(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	_, err := services.NewInstitutionService(db).CreateInstitution(ctx, services.InstitutionInput{Name: "Sunrise Public School", Code: "ssp"})
	require.NoError(t, err)
	m := NewAdmissionManager(services.NewAdmissionService(db, nil))

	form := services.AdmissionInput{
		StudentName: "Riya", Email: "riya@example.org", Phone: "9876543210",
		InstitutionCode: "SSP", Course: "Class 11 Science",
	}
	a, err := m.Create(ctx, form)
	require.NoError(t, err)
	assert.Equal(t, model.AdmissionStatusPending, a.Status)

	form.InstitutionCode = "nope"
	_, err = m.Create(ctx, form)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	require.Len(t, m.Items(ctx), 1)

	reviewed, err := m.Update(ctx, a.ID, services.AdmissionStatusUpdate{Status: model.AdmissionStatusReviewed, ExpectedVersion: &a.Version})
	require.NoError(t, err)
	got, ok := m.Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, model.AdmissionStatusReviewed, got.Status)

	// the first version is gone, so this write loses
	_, err = m.Update(ctx, a.ID, services.AdmissionStatusUpdate{Status: model.AdmissionStatusRejected, ExpectedVersion: &a.Version})
	assert.ErrorIs(t, err, services.ErrStaleVersion)
	_, err = m.Update(ctx, uuid.New(), services.AdmissionStatusUpdate{Status: model.AdmissionStatusAccepted})
	assert.ErrorIs(t, err, services.ErrNotFound)

	got, _ = m.Get(a.ID)
	assert.Equal(t, *reviewed, got)

	pending := model.AdmissionStatusPending
	assert.Empty(t, m.Filtered(ctx, filters.Admission{Status: &pending}))
	status := model.AdmissionStatusReviewed
	assert.Len(t, m.Filtered(ctx, filters.Admission{Status: &status}), 1)
}

func seedSlides(t *testing.T, m *CarouselManager, n int) []model.CarouselImage {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := m.Create(context.Background(), services.CarouselImageInput{
			Title:    fmt.Sprintf("slide-%d", i),
			ImageURL: fmt.Sprintf("https://cdn.example.org/%d.jpg", i),
		})
		require.NoError(t, err)
	}
	return m.Items(context.Background())
}

func TestCarouselMove(t *testing.T) {
	ctx := context.Background()
	m := NewCarouselManager(services.NewCarouselService(dbtest.Open(t)))
	before := seedSlides(t, m, 4)
	require.Equal(t, "slide-0", before[0].Title)

	after, err := m.Move(ctx, before[3].ID, services.DirectionUp)
	require.NoError(t, err)

	titles := make([]string, len(after))
	orders := make([]int, len(after))
	for i, it := range after {
		titles[i] = it.Title
		orders[i] = it.SortOrder
	}
	assert.Equal(t, []string{"slide-0", "slide-1", "slide-3", "slide-2"}, titles)
	assert.Equal(t, []int{1, 2, 3, 4}, orders)
	assert.Equal(t, after, m.Items(ctx))
}

type failingOrder struct {
	*services.CarouselService
}

func (failingOrder) UpsertCarouselOrder(context.Context, []uuid.UUID) error { return errStore }

func TestCarouselMoveFailureKeepsMirror(t *testing.T) {
	ctx := context.Background()
	m := NewCarouselManager(failingOrder{services.NewCarouselService(dbtest.Open(t))})
	before := seedSlides(t, m, 3)

	_, err := m.Move(ctx, before[0].ID, services.DirectionDown)
	assert.ErrorIs(t, err, errStore)
	assert.Equal(t, before, m.Items(ctx))
}

func TestCarouselDeleteReloadsSequence(t *testing.T) {
	ctx := context.Background()
	m := NewCarouselManager(services.NewCarouselService(dbtest.Open(t)))
	before := seedSlides(t, m, 3)

	require.NoError(t, m.Delete(ctx, before[0].ID))

	items := m.Items(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].SortOrder)
	assert.Equal(t, before[1].ID, items[0].ID)
}
