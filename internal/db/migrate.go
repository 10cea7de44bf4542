package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS day_summaries (
		day          TEXT PRIMARY KEY,
		events       INTEGER NOT NULL DEFAULT 0 CHECK(events >= 0),
		worked_sec   INTEGER NOT NULL DEFAULT 0 CHECK(worked_sec >= 0),
		working      INTEGER NOT NULL DEFAULT 0 CHECK(working IN (0, 1)),
		open_start   TEXT,
		source_size  INTEGER NOT NULL DEFAULT 0,
		source_mtime TEXT NOT NULL,
		indexed_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_day_summaries_indexed ON day_summaries(indexed_at)`,
}
