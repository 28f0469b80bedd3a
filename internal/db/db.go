// Package db opens the SQLite store and owns its schema.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DefaultPath is where the database lives when nothing else is configured.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "mesoplan.db"
	}
	return filepath.Join(home, ".mesoplan", "mesoplan.db")
}

// OpenDB opens (creating if needed) the SQLite database at path and brings
// its schema up to date. ":memory:" opens a private in-memory database.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// An in-memory database exists per connection.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	pragmas := []struct{ stmt, what string }{
		{"PRAGMA journal_mode = WAL", "setting WAL mode"},
		{"PRAGMA foreign_keys = ON", "enabling foreign keys"},
		{"PRAGMA busy_timeout = 5000", "setting busy timeout"},
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p.what, err)
		}
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}
