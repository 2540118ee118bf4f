// Package history persists search activity between sessions.
//
// Store is safe for concurrent use; the underlying sql.DB serializes access.
// It backs two UI features: the recent-searches panel shown under an empty
// input, and pinned searches the user saves with ctrl+s.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// Store handles persistence of query history and pinned searches.
type Store struct {
	db *sql.DB
}

// RecentQuery is one row of the recent-searches panel.
type RecentQuery struct {
	Query    string
	LastUsed time.Time
	Count    int
}

// PinnedSearch is a query the user chose to keep.
type PinnedSearch struct {
	ID    int64
	Name  string
	Query string
}

// NewStore opens (and if needed creates) the history database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS queries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		query TEXT NOT NULL,
		searched_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_queries_searched ON queries(searched_at DESC);
	CREATE INDEX IF NOT EXISTS idx_queries_query ON queries(query);

	CREATE TABLE IF NOT EXISTS pinned (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		query TEXT NOT NULL UNIQUE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordQuery logs that a query was submitted for full results.
func (s *Store) RecordQuery(query string) error {
	_, err := s.db.Exec(
		"INSERT INTO queries (query, searched_at) VALUES (?, ?)",
		query, time.Now().UTC(),
	)
	return err
}

// Recent returns the n most recently used distinct queries, newest first.
func (s *Store) Recent(n int) ([]RecentQuery, error) {
	rows, err := s.db.Query(`
		SELECT query, MAX(searched_at) AS last_used, COUNT(*) AS uses
		FROM queries
		GROUP BY query
		ORDER BY last_used DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RecentQuery
	for rows.Next() {
		var rq RecentQuery
		if err := rows.Scan(&rq.Query, &rq.LastUsed, &rq.Count); err != nil {
			return nil, err
		}
		out = append(out, rq)
	}
	return out, rows.Err()
}

// SavePinned pins a query under a display name. Re-pinning an existing
// query updates its name.
func (s *Store) SavePinned(name, query string) error {
	_, err := s.db.Exec(`
		INSERT INTO pinned (name, query) VALUES (?, ?)
		ON CONFLICT(query) DO UPDATE SET name = excluded.name`,
		name, query)
	return err
}

// Pinned returns all pinned searches, newest first.
func (s *Store) Pinned() ([]PinnedSearch, error) {
	rows, err := s.db.Query(
		"SELECT id, name, query FROM pinned ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PinnedSearch
	for rows.Next() {
		var p PinnedSearch
		if err := rows.Scan(&p.ID, &p.Name, &p.Query); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeletePinned removes a pinned search by id.
func (s *Store) DeletePinned(id int64) error {
	_, err := s.db.Exec("DELETE FROM pinned WHERE id = ?", id)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
