// Package cache stores raw provider responses in a local SQLite database
// so repeated lookups within the TTL do not hit the upstream APIs.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"goalline/internal/logger"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS responses (
	key        TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	fetched_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_responses_fetched_at ON responses(fetched_at);
`

// Open creates or opens the cache database at path, creating parent
// directories as needed
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	logger.Info("Response cache initialized", path)
	return &Store{db: db}, nil
}

// Get returns the cached body for key if it is younger than ttl
func (s *Store) Get(key string, ttl time.Duration) ([]byte, bool) {
	var body []byte
	var fetchedAt int64
	err := s.db.QueryRow(
		"SELECT body, fetched_at FROM responses WHERE key = ?", key,
	).Scan(&body, &fetchedAt)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Warn("Cache read failed:", key, err)
		}
		return nil, false
	}
	if time.Since(time.Unix(fetchedAt, 0)) > ttl {
		return nil, false
	}
	return body, true
}

// Put stores or replaces the body for key with the current timestamp
func (s *Store) Put(key string, body []byte) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO responses (key, body, fetched_at) VALUES (?, ?, ?)",
		key, body, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Prune deletes entries older than ttl
func (s *Store) Prune(ttl time.Duration) error {
	cutoff := time.Now().Add(-ttl).Unix()
	_, err := s.db.Exec("DELETE FROM responses WHERE fetched_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune cache: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
