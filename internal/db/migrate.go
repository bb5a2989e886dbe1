package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the full
// list is replayed on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id             TEXT PRIMARY KEY,
		display_name   TEXT NOT NULL,
		timezone       TEXT NOT NULL DEFAULT 'UTC',
		check_in_times TEXT NOT NULL DEFAULT '07:00,12:00,20:00',
		start_date     TEXT NOT NULL,
		created_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		icon       TEXT NOT NULL DEFAULT '',
		cadence    TEXT NOT NULL DEFAULT 'daily'
		           CHECK(cadence IN ('daily','per_session')),
		sort_order INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		removed_at TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id, sort_order)`,

	`CREATE TABLE IF NOT EXISTS check_ins (
		id             TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date           TEXT NOT NULL,
		session_number INTEGER NOT NULL CHECK(session_number >= 1),
		created_at     TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_check_ins_session ON check_ins(user_id, date, session_number)`,

	`CREATE TABLE IF NOT EXISTS completions (
		id          TEXT PRIMARY KEY,
		check_in_id TEXT NOT NULL REFERENCES check_ins(id) ON DELETE CASCADE,
		task_id     TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		completed   INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_completions_pair ON completions(check_in_id, task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_completions_task ON completions(task_id)`,

	// Goal countdown
	`ALTER TABLE users ADD COLUMN goal_date TEXT`,
}
