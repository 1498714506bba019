package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/commercedata/shopsync/internal/logging"
)

// LoadError reports a failed batch commit. The batch was rolled back;
// the caller may retry the same page.
type LoadError struct {
	Table string
	Rows  int
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load into %s failed (%d rows attempted): %v", e.Table, e.Rows, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsConstraint reports whether err is a SQLite constraint violation.
// The same batch conflicts the same way on every attempt, so these are
// not worth retrying.
func IsConstraint(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}

// RowSet is one builder's output for one page: ordered rows shaped to
// the table's column list.
type RowSet struct {
	Table Table
	Rows  [][]any
}

// Loader performs bulk idempotent upserts into tenant tables.
type Loader struct {
	handle  *sql.DB
	tenants []string
}

// NewLoader creates a Loader bound to a database handle and the tenant
// allow-list.
func NewLoader(handle *sql.DB, tenants []string) *Loader {
	return &Loader{handle: handle, tenants: tenants}
}

// CreateTables creates all entity tables for a tenant if absent.
func (l *Loader) CreateTables(ctx context.Context, tenant string) error {
	if err := ValidateTenant(tenant, l.tenants); err != nil {
		return err
	}
	for _, table := range Tables {
		ddl := fmt.Sprintf(table.createSQL, table.Name(tenant))
		if _, err := l.handle.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.Name(tenant), err)
		}
	}
	logging.Debug().Str("tenant", tenant).Msg("Tables ready")
	return nil
}

// Load commits one RowSet into the tenant's table as a single
// transaction. All rows commit together or none do. Returns the number
// of rows in the batch.
func (l *Loader) Load(ctx context.Context, tenant string, rs RowSet) (int, error) {
	if err := ValidateTenant(tenant, l.tenants); err != nil {
		return 0, err
	}
	if len(rs.Rows) == 0 {
		return 0, nil
	}

	table := rs.Table.Name(tenant)
	query := insertSQL(rs.Table, table)

	count, err := l.loadBatch(ctx, query, rs.Rows)
	if err != nil {
		loadErr := &LoadError{Table: table, Rows: len(rs.Rows), Err: err}
		logging.Error().
			Str("table", table).
			Int("rows", len(rs.Rows)).
			Err(err).
			Msg("Batch load failed")
		return 0, loadErr
	}

	logging.Debug().
		Str("table", table).
		Int("rows", count).
		Msg("Batch loaded")
	return count, nil
}

func (l *Loader) loadBatch(ctx context.Context, query string, rows [][]any) (int, error) {
	tx, err := l.handle.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return 0, fmt.Errorf("insert row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(rows), nil
}

// insertSQL builds the insert statement for a table under its conflict
// policy. The table name was validated upstream; all values are bound
// parameters.
func insertSQL(t Table, table string) string {
	cols := strings.Join(t.Columns, ", ")
	params := strings.TrimSuffix(strings.Repeat("?, ", len(t.Columns)), ", ")

	switch t.Policy {
	case InsertOrIgnore:
		return fmt.Sprintf("INSERT OR IGNORE INTO %s (%s) VALUES (%s)", table, cols, params)
	case UpdateMetrics:
		sets := make([]string, len(t.Metrics))
		for i, col := range t.Metrics {
			sets[i] = fmt.Sprintf("%s = excluded.%s", col, col)
		}
		return fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT(%s) DO UPDATE SET %s",
			table, cols, params, t.Key, strings.Join(sets, ", "),
		)
	default:
		return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, cols, params)
	}
}
