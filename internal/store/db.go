// Package store owns the embedded database file and exposes the course,
// progress, settings, and learning-time persistence surface. It performs no
// logging and no retries; storage errors propagate to the caller.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"coursetrack/internal/constants"
)

type DB struct {
	*sqlx.DB
}

// Open opens (creating if needed) the SQLite database at path, applies the
// idempotent schema, and seeds default settings. Safe to call on every start
// regardless of prior state. Callers must not issue other store operations
// until Open returns.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	// Single connection for the process lifetime; writes serialize inside
	// the engine and the pragmas below apply to every statement.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys=ON",
		"PRAGMA journal_mode=WAL",
		fmt.Sprintf("PRAGMA busy_timeout=%d", constants.BusyTimeout.Milliseconds()),
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("failed to set %q: %w", pragma, err)
		}
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	// Apply schema
	if _, err := db.Exec(Schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	if _, err := db.Exec(
		"INSERT OR IGNORE INTO settings (key, value) VALUES (?, 'true')",
		constants.SettingAutoplay,
	); err != nil {
		return nil, fmt.Errorf("failed to seed default settings: %w", err)
	}

	return &DB{db}, nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}

// parseTimestamp parses a timestamp written by SQLite's CURRENT_TIMESTAMP,
// which the engine records as UTC.
func parseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC)
}
