package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS cards (
		id          TEXT PRIMARY KEY,
		question    TEXT NOT NULL,
		answer      TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS resources (
		id         TEXT PRIMARY KEY,
		card_id    TEXT NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
		filename   TEXT NOT NULL,
		mime_type  TEXT NOT NULL DEFAULT '',
		data       BLOB NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_resources_card ON resources(card_id)`,

	`CREATE TABLE IF NOT EXISTS lu_states (
		card_id      TEXT PRIMARY KEY REFERENCES cards(id) ON DELETE CASCADE,
		grade        INTEGER NOT NULL DEFAULT 0 CHECK(grade BETWEEN 0 AND 5),
		num_reviews  INTEGER NOT NULL DEFAULT 1 CHECK(num_reviews >= 1),
		avg_grade    REAL NOT NULL DEFAULT 2.5 CHECK(avg_grade BETWEEN 0.0 AND 5.0),
		priority     REAL NOT NULL DEFAULT 3.0 CHECK(priority IN (2.0, 3.0, 4.0)),
		difficulty   REAL NOT NULL DEFAULT 0.0 CHECK(difficulty >= 0.0),
		status       TEXT NOT NULL DEFAULT 'memorized' CHECK(status IN ('final_drill', 'memorized')),
		last_review  TEXT,
		next_review  TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_lu_states_next_review ON lu_states(next_review)`,
}
