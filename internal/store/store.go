// Package store owns the durable object store: a local SQLite database with
// four collections (users, businesses, bookings, favorites), schema
// versioning through goose migrations, and fixed bootstrap records inserted
// on first-ever creation.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/bookit/internal/config"
	"github.com/dmitrijs2005/bookit/internal/logging"
	"github.com/dmitrijs2005/bookit/internal/store/migrations"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Store is the process-wide handle to the durable object store. The
// database is opened lazily exactly once: concurrent callers before the
// first open all wait on the same open instead of opening independently.
type Store struct {
	cfg *config.Config
	log logging.Logger

	once sync.Once
	db   *sql.DB
	err  error
}

// New returns an unopened Store. Nothing touches the filesystem until the
// first DB call.
func New(cfg *config.Config, log logging.Logger) *Store {
	return &Store{cfg: cfg, log: log}
}

// DB returns the shared database handle, opening and migrating the store on
// the first call. A failed open is cached and returned to every caller.
func (s *Store) DB(ctx context.Context) (*sql.DB, error) {
	s.once.Do(func() {
		s.db, s.err = s.open(ctx)
	})
	return s.db, s.err
}

// Close releases the handle if the store was ever opened.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	// SQLite allows one writer at a time; a single connection avoids
	// SQLITE_BUSY between the repositories.
	db.SetMaxOpenConns(1)

	if err := s.runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := s.seed(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s.log.Info(ctx, "store opened", "dsn", s.cfg.DatabaseDSN)
	return db, nil
}

func (s *Store) runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
