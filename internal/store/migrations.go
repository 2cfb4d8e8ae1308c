package store

import (
	"database/sql"
	"fmt"

	"helproom/internal/logging"
)

// migration adds a column to an existing table.
type migration struct {
	Table  string
	Column string
	Def    string
}

// pendingMigrations back-fills columns on databases created before the
// per-item deploy flag and low-stock threshold existed.
var pendingMigrations = []migration{
	{"items", "deployable", "INTEGER NOT NULL DEFAULT 0"},
	{"items", "low_count", "INTEGER"},
}

// runMigrations applies schema migrations for existing databases.
func runMigrations(db *sql.DB) error {
	applied := 0
	for _, m := range pendingMigrations {
		if columnExists(db, m.Table, m.Column) {
			continue
		}
		query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.Table, m.Column, m.Def)
		logging.StoreDebug("Executing migration: %s", query)
		if _, err := db.Exec(query); err != nil {
			return storageErr("migrate", fmt.Errorf("failed to add %s.%s: %w", m.Table, m.Column, err))
		}
		applied++
	}
	if applied > 0 {
		logging.Store("Schema migrations complete: applied=%d", applied)
	}
	return nil
}

// columnExists checks if a column exists in a table using PRAGMA table_info.
func columnExists(db *sql.DB, table, column string) bool {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			continue
		}
		if name == column {
			return true
		}
	}
	return false
}
