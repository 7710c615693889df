// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package viewstore persists named viewport origins in a SQLite database so
// interactive hosts can reopen a view where the user left it.
package viewstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Bookmark is a saved viewport origin.
type Bookmark struct {
	Name    string
	X, Y    int
	Updated time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS bookmarks (
    name       TEXT PRIMARY KEY,
    x          INTEGER NOT NULL,
    y          INTEGER NOT NULL,
    updated_at INTEGER NOT NULL    -- UnixNano
);
`

// Store is a SQLite-backed bookmark store. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path, creating parent directories
// as needed.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("viewstore: create directory: %w", err)
		}
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(1000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("viewstore: open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("viewstore: connect: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("viewstore: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save records the origin for name, replacing any previous value.
func (s *Store) Save(ctx context.Context, name string, x, y int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bookmarks (name, x, y, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET x = excluded.x, y = excluded.y, updated_at = excluded.updated_at`,
		name, x, y, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("viewstore: save %q: %w", name, err)
	}
	return nil
}

// Load returns the bookmark for name. ok is false if none was saved.
func (s *Store) Load(ctx context.Context, name string) (b Bookmark, ok bool, err error) {
	var updated int64
	err = s.db.QueryRowContext(ctx,
		`SELECT name, x, y, updated_at FROM bookmarks WHERE name = ?`, name).
		Scan(&b.Name, &b.X, &b.Y, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Bookmark{}, false, nil
	}
	if err != nil {
		return Bookmark{}, false, fmt.Errorf("viewstore: load %q: %w", name, err)
	}
	b.Updated = time.Unix(0, updated)
	return b, true, nil
}

// List returns all bookmarks, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Bookmark, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, x, y, updated_at FROM bookmarks ORDER BY updated_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("viewstore: list: %w", err)
	}
	defer rows.Close()

	var out []Bookmark
	for rows.Next() {
		var b Bookmark
		var updated int64
		if err := rows.Scan(&b.Name, &b.X, &b.Y, &updated); err != nil {
			return nil, fmt.Errorf("viewstore: list: %w", err)
		}
		b.Updated = time.Unix(0, updated)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("viewstore: list: %w", err)
	}
	return out, nil
}

// Delete removes the bookmark for name. Deleting a missing name is not an
// error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE name = ?`, name); err != nil {
		return fmt.Errorf("viewstore: delete %q: %w", name, err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
