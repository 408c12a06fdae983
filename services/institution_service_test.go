package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstitutionLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewInstitutionService(testDB(t))

	inst, err := svc.CreateInstitution(ctx, InstitutionInput{Name: "Gyan Public School", Code: " GPS "})
	require.NoError(t, err)
	assert.Equal(t, "gps", inst.Code)
	assert.True(t, inst.IsActive)
	assert.Equal(t, 1, inst.Version)

	got, err := svc.GetInstitutionByCode(ctx, "GPS")
	require.NoError(t, err)
	assert.Equal(t, inst.ID, got.ID)

	updated, err := svc.UpdateInstitution(ctx, inst.ID, InstitutionPatch{City: ptr("Jaipur")})
	require.NoError(t, err)
	assert.Equal(t, "Jaipur", updated.City)
	assert.Equal(t, 2, updated.Version)

	require.NoError(t, svc.DeleteInstitution(ctx, inst.ID))
	_, err = svc.GetInstitution(ctx, inst.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetInstitutionByCodeMisses(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	svc := NewInstitutionService(db)

	_, err := svc.GetInstitutionByCode(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	inactive, err := svc.CreateInstitution(ctx, InstitutionInput{Name: "Closed", Code: "closed", IsActive: ptr(false)})
	require.NoError(t, err)
	assert.False(t, inactive.IsActive)

	_, err = svc.GetInstitutionByCode(ctx, "closed")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, svc.ListInstitutions(ctx, true))
	assert.Len(t, svc.ListInstitutions(ctx, false), 1)
}

func TestCreateInstitutionDuplicateCode(t *testing.T) {
	ctx := context.Background()
	svc := NewInstitutionService(testDB(t))

	_, err := svc.CreateInstitution(ctx, InstitutionInput{Name: "A", Code: "gps"})
	require.NoError(t, err)

	_, err = svc.CreateInstitution(ctx, InstitutionInput{Name: "B", Code: "gps"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUpdateRejectsStaleVersion(t *testing.T) {
	ctx := context.Background()
	svc := NewInstitutionService(testDB(t))

	inst, err := svc.CreateInstitution(ctx, InstitutionInput{Name: "A", Code: "gps"})
	require.NoError(t, err)

	// first editor saves against version 1
	_, err = svc.UpdateInstitution(ctx, inst.ID, InstitutionPatch{Name: ptr("First"), ExpectedVersion: ptr(1)})
	require.NoError(t, err)

	// second editor still holds version 1
	_, err = svc.UpdateInstitution(ctx, inst.ID, InstitutionPatch{Name: ptr("Second"), ExpectedVersion: ptr(1)})
	assert.ErrorIs(t, err, ErrStaleVersion)

	got, err := svc.GetInstitution(ctx, inst.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", got.Name)
	assert.Equal(t, 2, got.Version)
}

func TestUpdateMissingRow(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	inst := newInstitution(t, db, "gps")
	svc := NewInstitutionService(db)
	require.NoError(t, svc.DeleteInstitution(ctx, inst.ID))

	_, err := svc.UpdateInstitution(ctx, inst.ID, InstitutionPatch{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.DeleteInstitution(ctx, inst.ID), ErrNotFound)
}

func TestEmptyUpdateStillChecksVersion(t *testing.T) {
	ctx := context.Background()
	svc := NewInstitutionService(testDB(t))

	inst, err := svc.CreateInstitution(ctx, InstitutionInput{Name: "A", Code: "gps"})
	require.NoError(t, err)
	_, err = svc.UpdateInstitution(ctx, inst.ID, InstitutionPatch{Name: ptr("B"), ExpectedVersion: ptr(1)})
	require.NoError(t, err)

	// nothing to change, but the editor's copy is out of date
	_, err = svc.UpdateInstitution(ctx, inst.ID, InstitutionPatch{ExpectedVersion: ptr(1)})
	assert.ErrorIs(t, err, ErrStaleVersion)

	got, err := svc.UpdateInstitution(ctx, inst.ID, InstitutionPatch{ExpectedVersion: ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, "B", got.Name)
	assert.Equal(t, 2, got.Version)

	got, err = svc.UpdateInstitution(ctx, inst.ID, InstitutionPatch{})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
}
