// Package store keeps a history of generated icon files in SQLite so the
// newest icon of a profile can be found without scanning the output folder.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"profilepop/internal/browser"

	_ "github.com/mattn/go-sqlite3"
)

var ErrNotFound = errors.New("no icon recorded for profile")

const schema = `
CREATE TABLE IF NOT EXISTS icons (
    browser TEXT NOT NULL,
    profile TEXT NOT NULL,
    name TEXT NOT NULL,
    path TEXT NOT NULL,
    sizes TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    PRIMARY KEY (browser, profile, path)
)`

// Entry is one generated icon file
type Entry struct {
	Key       browser.Key
	Name      string
	Path      string
	Sizes     []int
	CreatedAt time.Time
}

// DB wraps the SQLite connection
type DB struct {
	conn *sql.DB
}

// Open opens (creating if needed) the history database at path.
// ":memory:" gives a private in-memory database.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create icons table: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.conn.Close()
}

// Record stores entries in one transaction. Re-recording a path replaces it.
func (d *DB) Record(entries []Entry) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	const query = `INSERT OR REPLACE INTO icons (browser, profile, name, path, sizes, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	for _, e := range entries {
		if _, err := tx.Exec(query, string(e.Key.Kind), e.Key.ID, e.Name, e.Path, joinSizes(e.Sizes), e.CreatedAt.Unix()); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert icon %s: %w", e.Path, err)
		}
	}
	return tx.Commit()
}

// Latest returns the newest icon recorded for key
func (d *DB) Latest(key browser.Key) (Entry, error) {
	entries, err := d.History(key, 1)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return entries[0], nil
}

// History returns up to limit icons for key, newest first. limit <= 0 means all.
func (d *DB) History(key browser.Key, limit int) ([]Entry, error) {
	query := `SELECT name, path, sizes, created_at FROM icons WHERE browser = ? AND profile = ? ORDER BY created_at DESC, rowid DESC`
	args := []any{string(key.Kind), key.ID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query icons: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e := Entry{Key: key}
		var sizes string
		var ts int64
		if err := rows.Scan(&e.Name, &e.Path, &sizes, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		e.Sizes = splitSizes(sizes)
		e.CreatedAt = time.Unix(ts, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Forget removes the rows for paths that no longer exist on disk
func (d *DB) Forget(paths ...string) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	for _, p := range paths {
		if _, err := tx.Exec(`DELETE FROM icons WHERE path = ?`, p); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to delete icon %s: %w", p, err)
		}
	}
	return tx.Commit()
}

func joinSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}

func splitSizes(s string) []int {
	if s == "" {
		return nil
	}
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		if n, err := strconv.Atoi(part); err == nil {
			sizes = append(sizes, n)
		}
	}
	return sizes
}
