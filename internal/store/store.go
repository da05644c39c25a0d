// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

// Package store persists the campus ledger in SQLite. Every accepted call is
// written as one transaction, so the file never holds a partial call.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/trustcampus/campusapps/internal/ledger"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - Initial schema
// 2 - logs.program, so records of deleted apps still decode
const currentSchemaVersion = 2

// migrations upgrade a database from the version they are keyed by.
var migrations = map[int]string{
	1: `ALTER TABLE logs ADD COLUMN program TEXT NOT NULL DEFAULT ''`,
}

// Meta keys.
const (
	metaRound     = "round"
	metaNextIndex = "next_index"
)

// Store is the durable ledger.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path and applies
// pragmas and migrations. Safe to call on an existing file.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}
	// A version of 0 means the schema above just created every table.
	for v := version; v > 0 && v < currentSchemaVersion; v++ {
		if _, err := db.Exec(migrations[v]); err != nil {
			return fmt.Errorf("migrate schema from version %d: %w", v, err)
		}
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// OpenLedger opens the store at path and returns a ledger restored from it
// that writes every commit back. Extra options are applied before the
// restore.
func OpenLedger(ctx context.Context, path string, opts ...ledger.Option) (*ledger.Ledger, *Store, error) {
	s, err := Open(path)
	if err != nil {
		return nil, nil, err
	}
	snap, err := s.Load(ctx)
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	opts = append(opts, ledger.WithSnapshot(snap), ledger.WithPersister(s))
	l, err := ledger.New(opts...)
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	return l, s, nil
}

var _ ledger.Persister = (*Store)(nil)
