// Package storage provides read access to the relationship index built
// by the external indexer. All analysis runs open the database read-only;
// the only table this package writes is snapshots, owned by the
// snapshot/trend subsystem.
package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	roamerrors "github.com/chuckjewell/roam-code/internal/errors"
)

// DefaultDBName is the index filename under the .roam directory.
const DefaultDBName = "roam.db"

// Store wraps a SQLite connection to the relationship index.
type Store struct {
	conn   *sql.DB
	logger *slog.Logger
	dbPath string
}

// Open opens the index database at dbPath. A missing database is created
// with the full schema so `roam init` and test fixtures can populate it.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	existed := fileExists(dbPath)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	s := &Store{conn: conn, logger: logger, dbPath: dbPath}

	if !existed {
		logger.Info("Creating new index database", "path", dbPath)
		if err := s.initializeSchema(); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return s, nil
}

// OpenReadOnly opens an existing index database without write access.
// Analysis commands use this; writes are rejected by the engine.
func OpenReadOnly(dbPath string, logger *slog.Logger) (*Store, error) {
	if !fileExists(dbPath) {
		return nil, roamerrors.New(roamerrors.IndexMissing,
			fmt.Sprintf("index database not found at %s (run the indexer first)", dbPath), nil)
	}

	conn, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database read-only: %w", err)
	}
	if _, err := conn.Exec("PRAGMA query_only=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set pragma: %w", err)
	}

	return &Store{conn: conn, logger: logger, dbPath: dbPath}, nil
}

// OpenMemory opens a fresh in-memory index with the full schema. Used by
// tests and fixtures.
func OpenMemory(logger *slog.Logger) (*Store, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	s := &Store{conn: conn, logger: logger, dbPath: ":memory:"}
	if err := s.initializeSchema(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.dbPath }

// Exec executes a statement without returning rows.
func (s *Store) Exec(query string, args ...interface{}) (sql.Result, error) {
	return s.conn.Exec(query, args...)
}

// Query executes a query that returns rows.
func (s *Store) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return s.conn.Query(query, args...)
}

// QueryRow executes a query that returns at most one row.
func (s *Store) QueryRow(query string, args ...interface{}) *sql.Row {
	return s.conn.QueryRow(query, args...)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
