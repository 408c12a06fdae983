package database_test

import (
	"testing"

	"github.com/edugroup/site-api/database"
	"github.com/edugroup/site-api/database/dbtest"
	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/utils/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func count(t *testing.T, db *gorm.DB, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}

func TestRunSeedsFillsEmptyDatabase(t *testing.T) {
	db := dbtest.Open(t)
	admin := database.SeedAdmin{Email: " Admin@Site.Test ", Password: "correct-horse"}

	require.NoError(t, database.RunSeeds(db, admin))

	var stored model.AdminUser
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, "admin@site.test", stored.Email)
	assert.Equal(t, "Site Administrator", stored.Name)
	assert.NoError(t, auth.VerifyPassword(stored.PasswordHash, "correct-horse"))

	assert.EqualValues(t, 3, count(t, db, &model.Institution{}))
	assert.EqualValues(t, 3, count(t, db, &model.CarouselImage{}))
	assert.EqualValues(t, 1, count(t, db, &model.QuickUpdate{}))

	var slides []model.CarouselImage
	require.NoError(t, db.Order("sort_order").Find(&slides).Error)
	for i, s := range slides {
		assert.Equal(t, i+1, s.SortOrder)
	}
}

func TestRunSeedsIsRepeatable(t *testing.T) {
	db := dbtest.Open(t)
	admin := database.SeedAdmin{Email: "admin@site.test", Password: "correct-horse"}

	require.NoError(t, database.RunSeeds(db, admin))
	require.NoError(t, database.RunSeeds(db, admin))

	assert.EqualValues(t, 1, count(t, db, &model.AdminUser{}))
	assert.EqualValues(t, 3, count(t, db, &model.Institution{}))
}

func TestRunSeedsWithoutAdmin(t *testing.T) {
	db := dbtest.Open(t)

	require.NoError(t, database.RunSeeds(db, database.SeedAdmin{}))

	assert.Zero(t, count(t, db, &model.AdminUser{}))
	assert.EqualValues(t, 3, count(t, db, &model.Institution{}))
}
