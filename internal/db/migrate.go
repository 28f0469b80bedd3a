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
			// Every statement re-runs on open, so ALTER TABLE ADD COLUMN
			// fails once the column exists.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS mesocycles (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		start_date  TEXT NOT NULL,
		weeks       INTEGER NOT NULL CHECK(weeks > 0),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS mesocycle_progressions (
		id                  TEXT PRIMARY KEY,
		mesocycle_id        TEXT NOT NULL UNIQUE REFERENCES mesocycles(id) ON DELETE CASCADE,
		baseline_week       TEXT NOT NULL DEFAULT '{}',
		progression_type    TEXT NOT NULL DEFAULT 'linear'
		                    CHECK(progression_type IN ('linear','wave','block','undulating','step','custom')),
		weekly_progressions TEXT NOT NULL DEFAULT '[]',
		global_settings     TEXT NOT NULL DEFAULT '{}',
		strategy            TEXT,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS workout_templates (
		id          TEXT PRIMARY KEY,
		label       TEXT NOT NULL,
		days        TEXT NOT NULL DEFAULT '[]',
		exercises   TEXT NOT NULL DEFAULT '[]',
		created_at  TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_workout_templates_label ON workout_templates(label)`,

	`CREATE TABLE IF NOT EXISTS workout_instances (
		id            TEXT PRIMARY KEY,
		mesocycle_id  TEXT NOT NULL REFERENCES mesocycles(id) ON DELETE CASCADE,
		template_id   TEXT NOT NULL REFERENCES workout_templates(id) ON DELETE CASCADE,
		label         TEXT NOT NULL,
		date          TEXT NOT NULL,
		week          INTEGER NOT NULL CHECK(week > 0),
		is_deload     INTEGER NOT NULL DEFAULT 0,
		exercises     TEXT NOT NULL DEFAULT '[]',
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_workout_instances_mesocycle ON workout_instances(mesocycle_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_workout_instances_template ON workout_instances(template_id)`,

	// Snapshots taken when a week enters deload, restored when it leaves.
	`ALTER TABLE mesocycle_progressions ADD COLUMN pre_deload TEXT NOT NULL DEFAULT '{}'`,
}
