// Package dbtest opens throwaway in-memory databases for repository tests.
package dbtest

import (
	"testing"

	"go-calypso/internal/shared/connection"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open returns a migrated sqlite database. The pool is pinned to one
// connection since every sqlite :memory: connection is its own database.
func Open(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	// sqlite reports columns, not index names, so tests rely on gorm's
	// translated errors instead.
	cfg := connection.GormConfig()
	cfg.TranslateError = true

	db, err := gorm.Open(sqlite.Open(":memory:"), cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if len(models) > 0 {
		require.NoError(t, db.AutoMigrate(models...))
	}
	return db
}
