package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const metadataTable = "shopsync_metadata"

const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS shopsync_metadata (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// SaveSyncMark records the completion time of a tenant/source sync run.
func SaveSyncMark(ctx context.Context, handle *sql.DB, tenant, source string, at time.Time) error {
	if _, err := handle.ExecContext(ctx, createMetadataTableSQL); err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	key := fmt.Sprintf("last_sync.%s.%s", tenant, source)
	_, err := handle.ExecContext(ctx, `
        INSERT INTO shopsync_metadata (key, value) VALUES (?, ?)
        ON CONFLICT (key) DO UPDATE SET value = excluded.value
    `, key, at.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save sync mark %s: %w", key, err)
	}
	return nil
}

// GetSyncMark retrieves the last completed sync time for a tenant/source
// pair. Returns the zero time when no sync has been recorded.
func GetSyncMark(ctx context.Context, handle *sql.DB, tenant, source string) (time.Time, error) {
	key := fmt.Sprintf("last_sync.%s.%s", tenant, source)

	var value string
	err := handle.QueryRowContext(ctx, `
        SELECT value FROM shopsync_metadata WHERE key = ?
    `, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		// A missing table means no sync has ever run against this file.
		var zero time.Time
		if exists, checkErr := metadataExists(ctx, handle); checkErr == nil && !exists {
			return zero, nil
		}
		return zero, err
	}

	return time.Parse(time.RFC3339, value)
}

func metadataExists(ctx context.Context, handle *sql.DB) (bool, error) {
	var count int
	err := handle.QueryRowContext(ctx, `
        SELECT COUNT(*) FROM sqlite_master
        WHERE type = 'table' AND name = ?
    `, metadataTable).Scan(&count)
	return count > 0, err
}
