// Package sqlite provides the local-mode persistence layer. It keeps the
// whole workflow on a single-file database so the CLI works without a
// PostgreSQL server.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS exam_assignments (
	id TEXT PRIMARY KEY,
	discipline_id TEXT NOT NULL,
	student_group TEXT NOT NULL,
	exam_type TEXT NOT NULL,
	main_teacher_id TEXT NOT NULL,
	second_teacher_id TEXT NOT NULL,
	room_id TEXT,
	proposed_date TEXT,
	proposed_hour INTEGER NOT NULL DEFAULT 0,
	duration_mins INTEGER NOT NULL DEFAULT 0,
	alternate_date TEXT,
	alternate_hour INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	version INTEGER NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_assignments_key
	ON exam_assignments (discipline_id, student_group, exam_type);
CREATE INDEX IF NOT EXISTS idx_assignments_dates
	ON exam_assignments (proposed_date, alternate_date);

CREATE TABLE IF NOT EXISTS exam_periods (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL,
	is_active INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS teachers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS rooms (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS disciplines (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS student_groups (
	name TEXT PRIMARY KEY,
	leader_id TEXT
);

CREATE TABLE IF NOT EXISTS outbox (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	event_id TEXT NOT NULL,
	aggregate_type TEXT NOT NULL,
	aggregate_id TEXT NOT NULL,
	routing_key TEXT NOT NULL,
	payload BLOB NOT NULL,
	metadata BLOB,
	created_at TEXT NOT NULL,
	published_at TEXT,
	retry_count INTEGER NOT NULL DEFAULT 0,
	last_error TEXT,
	next_retry_at TEXT
);
`

// Open opens (and bootstraps) the local database at path.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?"
	} else {
		dsn += "&"
	}
	dsn += "_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Single writer; serialize everything through one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return db, nil
}

type txKey struct{}

// executor is the subset of sql.DB and sql.Tx the repositories use.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func executorFrom(ctx context.Context, db *sql.DB) executor {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

// UnitOfWork implements sharedApplication.UnitOfWork over database/sql
// transactions.
type UnitOfWork struct {
	db *sql.DB
}

// NewUnitOfWork creates a SQLite unit of work.
func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Begin starts a transaction, joining an outer one when present.
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return ctx, nil
	}
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return ctx, fmt.Errorf("beginning transaction: %w", err)
	}
	return context.WithValue(ctx, txKey{}, tx), nil
}

// Commit commits the context transaction.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	if !ok {
		return nil
	}
	return tx.Commit()
}

// Rollback rolls back the context transaction.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	if !ok {
		return nil
	}
	return tx.Rollback()
}

const (
	dayFormat  = "2006-01-02"
	timeFormat = time.RFC3339Nano
)

func encodeDay(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dayFormat)
}

func decodeDay(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(dayFormat, s.String)
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", s.String, err)
	}
	return &t, nil
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}
