// Package dbtest opens throwaway migrated stores for package tests
package dbtest

import (
	"testing"

	"github.com/edugroup/site-api/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open returns a migrated in-memory store that is closed when the test ends
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	return Store(t).DB()
}

// Store is Open for callers that need the database.Storage lifecycle
func Store(t testing.TB) *database.GORMStore {
	t.Helper()

	store, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Init())
	t.Cleanup(func() { _ = store.Close() })

	return store
}

// Drop removes the tables of the given models so that reads against them fail
func Drop(t testing.TB, db *gorm.DB, models ...interface{}) {
	t.Helper()
	require.NoError(t, db.Migrator().DropTable(models...))
}
