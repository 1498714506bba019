// Package db provides SQLite connection management for shopsync.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/commercedata/shopsync/internal/logging"
)

// Open opens the SQLite database at the given path and verifies the
// connection. The handle is restricted to a single open connection; the
// store is a single-writer file and every batch commit owns the
// connection for its duration.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path + "?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)"

	handle, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	handle.SetMaxOpenConns(1)

	if err := handle.PingContext(ctx); err != nil {
		handle.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.Debug().
		Str("path", path).
		Msg("Opened database")

	return handle, nil
}
