// Package storage provides read/write access to a GnuCash-compatible
// SQLite ledger file.
//
// The schema is owned by GnuCash itself; this package never creates or
// migrates production tables. It reads accounts, commodities and
// splits, and appends the transactions created by reconciliation
// fix-up.
package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Storage provides SQLite access to one ledger file.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// Open opens the GnuCash SQLite file at the given path.
func Open(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for test fixtures.
func (s *Storage) DB() *sql.DB {
	return s.db
}
