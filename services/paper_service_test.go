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

func seedPapers(t *testing.T, svc *PaperService) []*model.Paper {
	t.Helper()
	rows := []PaperInput{
		{Subject: "Physics", Class: "12", Year: 2024, Type: model.PaperTypeMock, Board: "CBSE", Difficulty: model.DifficultyHard},
		{Subject: "Physics", Class: "12", Year: 2023, Type: model.PaperTypePast, Board: "CBSE", Difficulty: model.DifficultyHard},
		{Subject: "Physics", Class: "11", Year: 2024, Type: model.PaperTypeMock, Board: "ICSE", Difficulty: model.DifficultyMedium},
		{Subject: "Chemistry", Class: "12", Year: 2024, Type: model.PaperTypeMock, Board: "CBSE", Difficulty: model.DifficultyHard},
		{Subject: "Physics", Class: "12", Year: 2024, Type: model.PaperTypeMock, Board: "CBSE", Difficulty: model.DifficultyEasy, Status: model.StatusInactive},
	}
	out := make([]*model.Paper, 0, len(rows))
	for _, r := range rows {
		p, err := svc.CreatePaper(context.Background(), r)
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func paperIDs(rows []model.Paper) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID.String()
	}
	return out
}

func TestGetPapersFiltersCombine(t *testing.T) {
	ctx := context.Background()
	svc := NewPaperService(testDB(t))
	seeded := seedPapers(t, svc)

	assert.Len(t, svc.GetPapers(ctx, filters.Paper{}), 5)

	tests := []struct {
		name string
		f    filters.Paper
		want []int
	}{
		{"subject", filters.Paper{Subject: ptr("Physics")}, []int{0, 1, 2, 4}},
		{"subject and class", filters.Paper{Subject: ptr("Physics"), Class: ptr("12")}, []int{0, 1, 4}},
		{"subject class and year", filters.Paper{Subject: ptr("Physics"), Class: ptr("12"), Year: ptr(2024)}, []int{0, 4}},
		{"every field", filters.Paper{
			Subject: ptr("Physics"), Class: ptr("12"), Year: ptr(2024),
			Type: ptr(model.PaperTypeMock), Board: ptr("CBSE"),
			Difficulty: ptr(model.DifficultyHard), Status: ptr(model.StatusActive),
		}, []int{0}},
		{"no overlap", filters.Paper{Subject: ptr("Chemistry"), Board: ptr("ICSE")}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := make([]string, 0, len(tt.want))
			for _, i := range tt.want {
				want = append(want, seeded[i].ID.String())
			}
			got := svc.GetPapers(ctx, tt.f)
			assert.ElementsMatch(t, want, paperIDs(got))
			for _, p := range got {
				assert.True(t, tt.f.Match(p))
			}
		})
	}
}

func TestIncrementPaperDownloads(t *testing.T) {
	ctx := context.Background()
	svc := NewPaperService(testDB(t))
	seeded := seedPapers(t, svc)
	active, inactive := seeded[0], seeded[4]

	require.NoError(t, svc.IncrementPaperDownloads(ctx, active.ID))
	require.NoError(t, svc.IncrementPaperDownloads(ctx, active.ID))
	got, err := svc.GetPaper(ctx, active.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.Downloads)
	assert.Equal(t, active.Version, got.Version)

	assert.ErrorIs(t, svc.IncrementPaperDownloads(ctx, inactive.ID), ErrNotFound)
	got, err = svc.GetPaper(ctx, inactive.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, got.Downloads)
}

func TestPaperReadFailureReturnsEmpty(t *testing.T) {
	db := testDB(t)
	svc := NewPaperService(db)
	seedPapers(t, svc)

	dbtest.Drop(t, db, &model.Paper{})

	got := svc.GetPapers(context.Background(), filters.Paper{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
