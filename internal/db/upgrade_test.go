package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A database created before pre-deload snapshots were persisted keeps its
// rows and gains the column with an empty default.
func TestMigrate_UpgradeAddsPreDeloadColumn(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)

	legacy := []string{
		`CREATE TABLE mesocycles (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			start_date  TEXT NOT NULL,
			weeks       INTEGER NOT NULL CHECK(weeks > 0),
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		)`,
		`CREATE TABLE mesocycle_progressions (
			id                  TEXT PRIMARY KEY,
			mesocycle_id        TEXT NOT NULL UNIQUE REFERENCES mesocycles(id) ON DELETE CASCADE,
			baseline_week       TEXT NOT NULL DEFAULT '{}',
			progression_type    TEXT NOT NULL DEFAULT 'linear',
			weekly_progressions TEXT NOT NULL DEFAULT '[]',
			global_settings     TEXT NOT NULL DEFAULT '{}',
			strategy            TEXT,
			updated_at          TEXT NOT NULL
		)`,
		`INSERT INTO mesocycles VALUES ('m1', 'Legacy', '2025-09-01', 6, '2025-09-01T00:00:00Z', '2025-09-01T00:00:00Z')`,
		`INSERT INTO mesocycle_progressions (id, mesocycle_id, progression_type, updated_at)
			VALUES ('p1', 'm1', 'wave', '2025-09-01T00:00:00Z')`,
	}
	for _, stmt := range legacy {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db), "second run tolerates the existing column")

	var ptype, preDeload string
	err = db.QueryRow(`SELECT progression_type, pre_deload FROM mesocycle_progressions WHERE id = 'p1'`).Scan(&ptype, &preDeload)
	require.NoError(t, err)
	assert.Equal(t, "wave", ptype)
	assert.Equal(t, "{}", preDeload)

	var name string
	require.NoError(t, db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='workout_instances'`).Scan(&name))
}
