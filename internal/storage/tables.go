package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// TableCacheEntry describes a cached table set without its data.
type TableCacheEntry struct {
	FormatVersion int
	SizeBytes     int64
	CreatedAt     time.Time
}

// TableCache stores serialized table sets keyed by format version.
type TableCache struct {
	db *DB
}

// NewTableCache creates a new table cache.
func NewTableCache(db *DB) *TableCache {
	return &TableCache{db: db}
}

// Save stores data for a format version, replacing any previous entry.
func (c *TableCache) Save(formatVersion int, data []byte) error {
	_, err := c.db.Exec(`
		INSERT INTO table_cache (format_version, data, size_bytes, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(format_version) DO UPDATE SET
			data = excluded.data,
			size_bytes = excluded.size_bytes,
			created_at = excluded.created_at
	`, formatVersion, data, len(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save tables: %w", err)
	}
	return nil
}

// Load returns the data stored for a format version, or ErrNotFound.
func (c *TableCache) Load(formatVersion int) ([]byte, error) {
	var data []byte
	err := c.db.QueryRow("SELECT data FROM table_cache WHERE format_version = ?", formatVersion).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load tables: %w", err)
	}
	return data, nil
}

// Status describes the entry for a format version, or returns ErrNotFound.
func (c *TableCache) Status(formatVersion int) (*TableCacheEntry, error) {
	var e TableCacheEntry
	var createdAt string
	err := c.db.QueryRow(`
		SELECT format_version, size_bytes, created_at
		FROM table_cache
		WHERE format_version = ?
	`, formatVersion).Scan(&e.FormatVersion, &e.SizeBytes, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read table cache: %w", err)
	}
	e.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return &e, nil
}

// Prune deletes entries for every format version other than keep.
func (c *TableCache) Prune(keep int) (int64, error) {
	res, err := c.db.Exec("DELETE FROM table_cache WHERE format_version != ?", keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune table cache: %w", err)
	}
	return res.RowsAffected()
}
