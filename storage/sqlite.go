package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLite keeps every visitor's values in one table, keyed by (scope, key).
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path, ensures the data
// directory exists, and creates the values table.
func NewSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// WAL lets page renders read while a submission writes.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &SQLite{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS kv (
    scope TEXT NOT NULL,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (scope, key)
);
`)
	return err
}

// Scope returns a KV view restricted to one visitor.
func (s *SQLite) Scope(scope string) KV {
	return &scoped{db: s.db, scope: scope}
}

type scoped struct {
	db    *sql.DB
	scope string
}

func (s *scoped) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE scope = ? AND key = ?`, s.scope, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return value, nil
}

func (s *scoped) Set(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO kv (scope, key, value, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(scope, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.scope, key, value)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *scoped) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE scope = ? AND key = ?`, s.scope, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
