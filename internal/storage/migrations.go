package storage

import "fmt"

// migrate creates the cache schema if it doesn't exist.
func (db *DB) migrate() error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	db.logger.Info("database migrations applied")
	return nil
}

var migrations = []string{
	// Serialized cache entries. The envelope (data, timestamp, expiry)
	// lives inside the value; the store treats values as opaque strings.
	`CREATE TABLE IF NOT EXISTS cache_entries (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_cache_entries_updated ON cache_entries(updated_at)`,
}
