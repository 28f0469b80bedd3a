package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func insertMesocycle(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO mesocycles (id, name, start_date, weeks, created_at, updated_at)
		VALUES (?, 'Block', '2026-03-04', 4, '2026-03-01T00:00:00Z', '2026-03-01T00:00:00Z')`, id)
	require.NoError(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"mesocycles", "mesocycle_progressions", "workout_templates", "workout_instances"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_workout_templates_label",
		"idx_workout_instances_mesocycle",
		"idx_workout_instances_template",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestMigrate_WALModeRequested(t *testing.T) {
	// In-memory databases report "memory"; WAL only applies to files.
	db := openTestDB(t)

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "memory", mode)
}

func TestMigrate_MesocycleWeeksCheck(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO mesocycles (id, name, start_date, weeks, created_at, updated_at)
		VALUES ('m1', 'Bad', '2026-03-04', 0, '2026-03-01T00:00:00Z', '2026-03-01T00:00:00Z')`)
	assert.Error(t, err, "zero-week mesocycle should be rejected")
}

func TestMigrate_ProgressionTypeCheck(t *testing.T) {
	db := openTestDB(t)
	insertMesocycle(t, db, "m1")

	_, err := db.Exec(`INSERT INTO mesocycle_progressions (id, mesocycle_id, progression_type, updated_at)
		VALUES ('p1', 'm1', 'sideways', '2026-03-01T00:00:00Z')`)
	assert.Error(t, err)

	_, err = db.Exec(`INSERT INTO mesocycle_progressions (id, mesocycle_id, progression_type, updated_at)
		VALUES ('p1', 'm1', 'wave', '2026-03-01T00:00:00Z')`)
	assert.NoError(t, err)
}

func TestMigrate_OneProgressionPerMesocycle(t *testing.T) {
	db := openTestDB(t)
	insertMesocycle(t, db, "m1")

	_, err := db.Exec(`INSERT INTO mesocycle_progressions (id, mesocycle_id, updated_at) VALUES ('p1', 'm1', '2026-03-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO mesocycle_progressions (id, mesocycle_id, updated_at) VALUES ('p2', 'm1', '2026-03-01T00:00:00Z')`)
	assert.Error(t, err)
}

func TestMigrate_ProgressionDefaults(t *testing.T) {
	db := openTestDB(t)
	insertMesocycle(t, db, "m1")

	_, err := db.Exec(`INSERT INTO mesocycle_progressions (id, mesocycle_id, updated_at) VALUES ('p1', 'm1', '2026-03-01T00:00:00Z')`)
	require.NoError(t, err)

	var ptype, weeks, preDeload, baseline string
	var strategy sql.NullString
	err = db.QueryRow(`SELECT progression_type, weekly_progressions, pre_deload, baseline_week, strategy
		FROM mesocycle_progressions WHERE id = 'p1'`).Scan(&ptype, &weeks, &preDeload, &baseline, &strategy)
	require.NoError(t, err)
	assert.Equal(t, "linear", ptype)
	assert.Equal(t, "[]", weeks)
	assert.Equal(t, "{}", preDeload)
	assert.Equal(t, "{}", baseline)
	assert.False(t, strategy.Valid)
}

func TestMigrate_DeleteMesocycleCascades(t *testing.T) {
	db := openTestDB(t)
	insertMesocycle(t, db, "m1")

	_, err := db.Exec(`INSERT INTO mesocycle_progressions (id, mesocycle_id, updated_at) VALUES ('p1', 'm1', '2026-03-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO workout_templates (id, label, created_at) VALUES ('t1', 'Upper', '2026-03-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO workout_instances (id, mesocycle_id, template_id, label, date, week, created_at)
		VALUES ('i1', 'm1', 't1', 'Upper - Week 1', '2026-03-04', 1, '2026-03-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM mesocycles WHERE id = 'm1'`)
	require.NoError(t, err)

	for _, table := range []string{"mesocycle_progressions", "workout_instances"} {
		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
		assert.Zero(t, n, "%s should be emptied by cascade", table)
	}

	var templates int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM workout_templates`).Scan(&templates))
	assert.Equal(t, 1, templates, "templates outlive mesocycles")
}
