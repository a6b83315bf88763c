// Package dbtest provides migrated in-memory databases for store tests.
package dbtest

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finsight/internal/config"
	"github.com/MrJamesThe3rd/finsight/internal/database"
)

// NewSQLite returns a fresh in-memory SQLite database with the schema applied.
func NewSQLite(t testing.TB) *sql.DB {
	t.Helper()

	db, err := database.NewSQLite(":memory:")
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db, config.DriverSQLite))

	return db
}
