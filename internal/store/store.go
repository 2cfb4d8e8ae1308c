// Package store owns the inventory database: locations, items, and their
// counts. All mutation goes through this package so the non-negative count
// invariant is enforced in one place. The presentation layer keeps no
// authoritative state of its own; it re-reads after every write.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"helproom/internal/logging"

	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database holding the inventory. Construct one at
// startup with Open, pass it by reference, and Close it on shutdown.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// Open opens (creating if necessary) the inventory database at path and
// ensures the schema is in place. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	timer := logging.StartTimer(logging.CategoryStore, "Open")
	defer timer.Stop()

	if dir := filepath.Dir(path); path != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, storageErr("open", fmt.Errorf("failed to create directory: %w", err))
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storageErr("open", err)
	}

	// Single-user application: one connection avoids SQLITE_BUSY without
	// any locking discipline of our own.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	logging.Store("Inventory database ready at %s", path)
	return s, nil
}

// initialize creates the required tables.
func (s *Store) initialize() error {
	locationsTable := `
	CREATE TABLE IF NOT EXISTS locations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);
	`

	itemsTable := `
	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		count INTEGER NOT NULL DEFAULT 0,
		deployable INTEGER NOT NULL DEFAULT 0,
		low_count INTEGER,
		location_id TEXT NOT NULL,
		FOREIGN KEY (location_id) REFERENCES locations(id)
	);
	CREATE INDEX IF NOT EXISTS idx_items_location ON items(location_id);
	CREATE INDEX IF NOT EXISTS idx_items_name ON items(name);
	`

	for _, table := range []string{locationsTable, itemsTable} {
		if _, err := s.db.Exec(table); err != nil {
			return storageErr("initialize", fmt.Errorf("failed to create table: %w", err))
		}
	}

	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	logging.StoreDebug("Closing inventory database %s", s.dbPath)
	return s.db.Close()
}

// Ping verifies the database is reachable. Used at startup so a corrupt
// or unreadable file fails fast instead of on the first user action.
func (s *Store) Ping() error {
	return storageErr("ping", s.db.Ping())
}

// Path returns the database file path the store was opened with.
func (s *Store) Path() string {
	return s.dbPath
}
