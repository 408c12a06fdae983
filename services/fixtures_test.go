package services

import (
	"context"
	"testing"

	"github.com/edugroup/site-api/database/dbtest"
	"github.com/edugroup/site-api/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func ptr[T any](v T) *T { return &v }

func newInstitution(t *testing.T, db *gorm.DB, code string) *model.Institution {
	t.Helper()
	inst, err := NewInstitutionService(db).CreateInstitution(context.Background(), InstitutionInput{
		Name: "Institution " + code,
		Code: code,
	})
	require.NoError(t, err)
	return inst
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	return dbtest.Open(t)
}
