// Package session provides SQLite storage for nidra collection sessions.
package session

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database that tracks collection runs and their
// per-label sample counts.
type Store struct {
	db *sql.DB
}

// schema is applied on every open; statements are idempotent.
var schema = []string{
	// One row per collection run
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		dataset_path TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		ended_at DATETIME
	)`,

	// Samples recorded per label per session
	`CREATE TABLE IF NOT EXISTS session_labels (
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		label INTEGER NOT NULL,
		count INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (session_id, label)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_session_labels_session_id ON session_labels(session_id)`,
}

// New opens (creating if needed) the session database at dbPath and
// ensures the schema is present.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}

	// session_labels rows cascade from sessions
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply session schema: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}
