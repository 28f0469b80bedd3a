package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/mesoplan/internal/db"
)

// NewTestDB opens a migrated in-memory database that is closed with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
