package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Every statement is idempotent, so it is safe
// to run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Timestamps are stored as fixed-width UTC RFC3339 text, so string order
// is time order.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS calendar_events (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL CHECK(title <> ''),
		description TEXT NOT NULL DEFAULT '',
		start_at    TEXT NOT NULL,
		end_at      TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		CHECK(start_at < end_at)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_calendar_events_start ON calendar_events(start_at)`,
	`CREATE INDEX IF NOT EXISTS idx_calendar_events_end ON calendar_events(end_at)`,
}
