package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // SQLite driver
)

// Store persists named JSON blobs in a local SQLite file. Each key is an
// independent unit: saves fully overwrite the previous value and nothing
// spans two keys. Reads never fail; a missing or corrupt blob degrades to
// whatever fallback value the caller already holds.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the store file, creating it and the blob table if needed.
func Open(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS blobs (
		key TEXT NOT NULL PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err = db.Exec(sqlStmt); err != nil {
		return nil, err
	}
	return &Store{db: db, path: dataSourceName}, nil
}

// Path returns the location of the underlying store file.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the blob stored under key into dest and reports whether a
// well-formed blob existed. When it returns false the contents of dest are
// unspecified; callers keep their fallback value instead.
func (s *Store) Load(key string, dest interface{}) bool {
	var raw string
	err := s.db.QueryRow("SELECT value FROM blobs WHERE key = ?", key).Scan(&raw)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Warn().Err(err).Str("key", key).Msg("Failed to read blob, falling back")
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Discarding corrupt blob")
		return false
	}
	return true
}

// Save serializes value and stores it under key, replacing any prior blob.
func (s *Store) Save(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw), time.Now().UTC())
	return err
}

// Delete removes the blob stored under key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec("DELETE FROM blobs WHERE key = ?", key)
	return err
}
