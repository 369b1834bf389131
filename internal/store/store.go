// Package store persists the pawtally collections in a SQLite database,
// one JSON snapshot per collection key.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Collection keys. The version suffix changes when the stored shape
// changes incompatibly; old keys are simply ignored.
const (
	KeyPets      = "pets-v1"
	KeyExpenses  = "expenses-v1"
	KeyBudgets   = "budgets-v1"
	KeyRecurring = "recurring-v1"
	KeyEstimates = "estimates-v1"
)

// Store is a SQLite-backed snapshot store for whole collections.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the collection stored under key into dst. A missing key or
// a snapshot that no longer unmarshals leaves dst untouched, so callers
// keep their default value instead of failing on untrusted storage.
func (s *Store) Load(key string, dst any) error {
	var raw string
	err := s.db.QueryRow("SELECT value FROM collections WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		// Corrupt snapshot: fail soft, caller keeps its default.
		return nil
	}
	return nil
}

// Save writes a full collection snapshot under key.
func (s *Store) Save(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO collections (key, value, updated_at) VALUES (?, ?, ?)",
		key, string(raw), now,
	)
	if err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}
