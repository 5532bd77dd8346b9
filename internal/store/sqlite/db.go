// Package sqlite is the embedded entity store backend built on the pure Go
// SQLite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alextreichler/carrental/internal/store"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	DB *sql.DB
}

var _ store.Store = (*Store)(nil)

// NewStore opens the database at dataSourceName and caps the pool at
// maxConns open connections.
func NewStore(dataSourceName string, maxConns int) (*Store, error) {
	db, err := sql.Open("sqlite", withPragmas(dataSourceName))
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	slog.Debug("SQLite store opened", "path", dataSourceName, "max_conns", maxConns)
	return &Store{DB: db}, nil
}

// withPragmas sets the busy timeout, WAL mode and a sortable time format
// unless the caller already passed query parameters. Transactions begin
// IMMEDIATE, taking the write lock before the first read.
func withPragmas(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn
	}
	return dsn + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite&_txlock=immediate"
}

func (s *Store) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.DB.Close()
}

// Counts returns the number of rows in each collection.
func (s *Store) Counts(ctx context.Context) (*store.Counts, error) {
	c := &store.Counts{}
	targets := []struct {
		table string
		dst   *int
	}{
		{"cars", &c.Cars},
		{"stores", &c.Locations},
		{"bookings", &c.Bookings},
		{"admins", &c.Admins},
	}
	for _, t := range targets {
		if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.table).Scan(t.dst); err != nil {
			return nil, fmt.Errorf("count %s: %w", t.table, err)
		}
	}
	return c, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		return serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
