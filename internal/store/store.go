// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists a history of parse invocations in a local SQLite
// database. Recording is opt-in (--record or history.enabled); the history
// subcommand reads it back.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "history.db"

// Entry is one recorded invocation.
type Entry struct {
	ID        int64
	FileName  string
	FileType  string
	Backend   string
	Success   bool
	Error     string
	NumTables int
	NumPages  *int
	ParsedAt  time.Time
}

// Store manages the invocation history database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns ~/.docparse/history.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".docparse", dbFile), nil
}

// Open opens or creates the history database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS parses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			file_name TEXT NOT NULL,
			file_type TEXT,
			backend TEXT,
			success INTEGER NOT NULL,
			error TEXT,
			num_tables INTEGER,
			num_pages INTEGER,
			parsed_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_parses_parsed_at ON parses(parsed_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one invocation. A zero ParsedAt is filled with the current
// time.
func (s *Store) Record(ctx context.Context, e Entry) error {
	when := e.ParsedAt
	if when.IsZero() {
		when = time.Now().UTC()
	}

	var pages any
	if e.NumPages != nil {
		pages = *e.NumPages
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO parses (file_name, file_type, backend, success, error, num_tables, num_pages, parsed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.FileName, e.FileType, e.Backend, e.Success, e.Error, e.NumTables, pages,
		when.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording parse of %s: %w", e.FileName, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, file_name, file_type, backend, success, error, num_tables, num_pages, parsed_at
		 FROM parses ORDER BY parsed_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			errText sql.NullString
			pages   sql.NullInt64
			when    string
		)
		if err := rows.Scan(&e.ID, &e.FileName, &e.FileType, &e.Backend, &e.Success,
			&errText, &e.NumTables, &pages, &when); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Error = errText.String
		if pages.Valid {
			n := int(pages.Int64)
			e.NumPages = &n
		}
		if ts, err := time.Parse(time.RFC3339, when); err == nil {
			e.ParsedAt = ts
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
