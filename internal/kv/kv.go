// Package kv provides a durable key/value store backed by SQLite.
//
// The cache uses it as its structured persistent tier. Values are opaque
// blobs; callers own serialization. SQLite handles moderate payloads well
// but is noticeably slower than a flat file for very large ones, which is
// why the cache caps what it stores here.
package kv

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store is a key/value store on a single SQLite database file.
type Store struct {
	db *sql.DB
}

const createEntriesTable = `
CREATE TABLE IF NOT EXISTS entries (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Open opens (creating if needed) the store at the given database path.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open kv db: %w", err)
	}

	if _, err := db.Exec(createEntriesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate kv db: %w", err)
	}

	return &Store{db: db}, nil
}

// Get retrieves the value for key. Returns false if the key is absent.
func (s *Store) Get(key string) ([]byte, bool) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM entries WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return nil, false
	}
	return value, true
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO entries (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("kv set: %w", err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("kv delete: %w", err)
	}
	return nil
}

// List returns all entries whose key starts with prefix.
func (s *Store) List(prefix string) (map[string][]byte, error) {
	rows, err := s.db.Query(
		`SELECT key, value FROM entries WHERE key LIKE ? ESCAPE '\'`,
		likePattern(prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("kv list: %w", err)
	}
	defer rows.Close()

	entries := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("kv list: %w", err)
		}
		entries[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kv list: %w", err)
	}
	return entries, nil
}

// DeletePrefix removes every entry whose key starts with prefix and returns
// the number of entries removed.
func (s *Store) DeletePrefix(prefix string) (int, error) {
	res, err := s.db.Exec(
		`DELETE FROM entries WHERE key LIKE ? ESCAPE '\'`,
		likePattern(prefix),
	)
	if err != nil {
		return 0, fmt.Errorf("kv delete prefix: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("kv delete prefix: %w", err)
	}
	return int(n), nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// likePattern escapes LIKE metacharacters in prefix and appends a wildcard.
func likePattern(prefix string) string {
	escaped := make([]byte, 0, len(prefix)+1)
	for i := 0; i < len(prefix); i++ {
		switch prefix[i] {
		case '%', '_', '\\':
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, prefix[i])
	}
	return string(escaped) + "%"
}
