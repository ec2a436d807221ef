// Package sqlite implements ledger.Store on SQLite via mattn/go-sqlite3.
//
// The five ledger relations map to the tables aliases, classifications,
// translations, edges and attributes. Attribute values are stored in sparse
// per-source columns (speakers_EL, lat_WA, lon_WA, english_low_CN, ...)
// that are added the first time a source reports that field.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/agentstation/langmap/pkg/constants"
	"github.com/agentstation/langmap/pkg/errors"
	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/logging"
)

// InMemory is the path that opens a private in-memory database.
const InMemory = ":memory:"

// Store is a SQLite-backed ledger.Store.
type Store struct {
	db     *sql.DB
	logger *zerolog.Logger

	// mu guards columns, the set of attribute columns known to exist.
	mu      sync.RWMutex
	columns map[string]bool
}

var _ ledger.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for migrations and schema changes.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Open opens or creates the database at path, along with its parent
// directory, applies pragmas and runs
// pending migrations.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if path != InMemory {
		if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("create", filepath.Dir(path), err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	if path == InMemory {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		fmt.Sprintf("PRAGMA busy_timeout = %d", constants.SQLiteBusyTimeout.Milliseconds()),
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, errors.WrapIO("configure", path, fmt.Errorf("%s: %w", p, err))
		}
	}

	s := newStore(db, opts...)
	if err := Migrate(ctx, db, s.logger); err != nil {
		_ = db.Close()
		return nil, errors.WrapIO("migrate", path, err)
	}
	if err := s.loadColumns(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WrapIO("inspect", path, err)
	}

	s.logger.Debug().Str("path", path).Int("attribute_columns", len(s.columns)).Msg("Opened sqlite ledger")
	return s, nil
}

func newStore(db *sql.DB, opts ...Option) *Store {
	s := &Store{
		db:      db,
		logger:  logging.Default(),
		columns: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DB returns the underlying handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
