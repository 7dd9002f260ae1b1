package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when no entry exists for a key.
var ErrNotFound = errors.New("storage: key not found")

// Get retrieves the value stored under key.
func (db *DB) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM cache_entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, overwriting any existing entry.
func (db *DB) Set(ctx context.Context, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO cache_entries (key, value, updated_at)
		 VALUES (?, ?, datetime('now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Delete removes the entry for key. Deleting a missing key is not an error.
func (db *DB) Delete(ctx context.Context, key string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Entry is a stored key/value pair returned by prefix scans.
type Entry struct {
	Key   string
	Value string
}

// EntriesWithPrefix returns all entries whose key starts with prefix.
func (db *DB) EntriesWithPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT key, value FROM cache_entries WHERE key LIKE ? || '%' ORDER BY key`,
		prefix)
	if err != nil {
		return nil, fmt.Errorf("scan prefix %q: %w", prefix, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteWithPrefix removes every entry whose key starts with prefix and
// returns the number of entries removed.
func (db *DB) DeleteWithPrefix(ctx context.Context, prefix string) (int64, error) {
	res, err := db.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE key LIKE ? || '%'`, prefix)
	if err != nil {
		return 0, fmt.Errorf("delete prefix %q: %w", prefix, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete prefix %q: %w", prefix, err)
	}
	return n, nil
}
