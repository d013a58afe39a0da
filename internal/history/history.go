package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/allurefw/report/internal/model"
)

// DBFileName is the history database file name inside the history dir.
const DBFileName = "history.db"

// Store provides SQLite-based storage for per-build statistics.
//
// Design decision: We use one database per history directory rather than
// one per report name. Rows carry the report name, so several projects
// can share a store, and cross-report queries stay possible.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Entry is one recorded build.
type Entry struct {
	// ID is the monotonically increasing build row id.
	ID int64 `json:"id"`

	// CreatedAt is when the build was recorded.
	CreatedAt time.Time `json:"created_at"`

	// Name is the report name the build belongs to.
	Name string `json:"name"`

	// Statistic is the build's outcome counts.
	Statistic model.Statistic `json:"statistic"`
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file if absent.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging. Recommended: the generate
	// command writes while a history command may read.
	EnableWAL bool
}

// DefaultOptions returns the default store options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history store under dir.
func Open(dir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check history database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to forbid creating new files and
	// mode=rwc to allow it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite supports a single writer; one connection avoids lock churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// createTables creates the schema if it doesn't exist.
func (s *Store) createTables() error {
	const schema = `
CREATE TABLE IF NOT EXISTS builds (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	name       TEXT NOT NULL,
	total      INTEGER NOT NULL,
	passed     INTEGER NOT NULL,
	failed     INTEGER NOT NULL,
	broken     INTEGER NOT NULL,
	skipped    INTEGER NOT NULL,
	unknown    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_builds_name ON builds(name);
`
	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Save appends one build row.
func (s *Store) Save(ctx context.Context, name string, stat model.Statistic) error {
	const query = `
INSERT INTO builds (name, total, passed, failed, broken, skipped, unknown)
VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		name, stat.Total, stat.Passed, stat.Failed, stat.Broken, stat.Skipped, stat.Unknown)
	if err != nil {
		return fmt.Errorf("failed to save build statistic: %w", err)
	}
	return nil
}

// Trend returns up to limit recent builds, oldest first so the trend
// chart reads left to right. A limit of 0 returns an empty slice.
func (s *Store) Trend(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return []Entry{}, nil
	}

	const query = `
SELECT id, created_at, name, total, passed, failed, broken, skipped, unknown
FROM builds
ORDER BY id DESC
LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query build history: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only rows

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.Name,
			&e.Statistic.Total, &e.Statistic.Passed, &e.Statistic.Failed,
			&e.Statistic.Broken, &e.Statistic.Skipped, &e.Statistic.Unknown); err != nil {
			return nil, fmt.Errorf("failed to scan build row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate build history: %w", err)
	}

	// Reverse to oldest-first order.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}
