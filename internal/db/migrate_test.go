package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesCalendarTable(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='calendar_events'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "calendar_events", name)
}

func TestMigrate_RejectsInvertedRange(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO calendar_events (id, title, start_at, end_at, created_at)
		VALUES ('x', 'Dinner', '2025-03-10T19:00:00Z', '2025-03-10T18:00:00Z', '2025-03-01T00:00:00Z')`)
	assert.Error(t, err)
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	path := t.TempDir() + "/nested/marty.db"

	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Ping())
}
