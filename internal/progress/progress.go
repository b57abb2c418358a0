// Package progress persists which elevator depths the player has unlocked.
package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// ErrInvalidDepth is returned for depths that cannot be unlocked: the
// surface (0) and anything above it.
var ErrInvalidDepth = errors.New("progress: depth must be positive")

const schema = `
CREATE TABLE IF NOT EXISTS unlocked_depths (
    depth       INTEGER PRIMARY KEY,
    unlocked_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Unlock records when a depth was first reached.
type Unlock struct {
	Depth      int
	UnlockedAt time.Time
}

// Store is a SQLite-backed set of unlocked depths. It satisfies
// elevator.UnlockSource.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path in WAL mode and ensures the
// schema exists. Use ":memory:" for a throwaway store.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("progress: open database: %w", err)
	}

	// One connection: SQLite has a single writer, and ":memory:" databases
	// are per-connection.
	db.SetMaxOpenConns(1)

	pragmas := []struct{ stmt, what string }{
		{"PRAGMA journal_mode=WAL", "enable WAL mode"},
		{"PRAGMA busy_timeout=5000", "set busy timeout"},
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("progress: %s: %w", p.what, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("progress: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Unlock marks depth as reached. Unlocking an already unlocked depth keeps
// the original timestamp.
func (s *Store) Unlock(ctx context.Context, depth int) error {
	if depth <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDepth, depth)
	}
	const q = `INSERT INTO unlocked_depths (depth) VALUES (?) ON CONFLICT(depth) DO NOTHING`
	if _, err := s.db.ExecContext(ctx, q, depth); err != nil {
		return fmt.Errorf("progress: unlock %d: %w", depth, err)
	}
	return nil
}

// UnlockedDepths returns the set of unlocked depths.
func (s *Store) UnlockedDepths(ctx context.Context) (map[int]bool, error) {
	unlocks, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[int]bool, len(unlocks))
	for _, u := range unlocks {
		set[u.Depth] = true
	}
	return set, nil
}

// List returns every unlock ordered by depth.
func (s *Store) List(ctx context.Context) ([]Unlock, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT depth, unlocked_at FROM unlocked_depths ORDER BY depth")
	if err != nil {
		return nil, fmt.Errorf("progress: list unlocks: %w", err)
	}
	defer rows.Close()

	var unlocks []Unlock
	for rows.Next() {
		var u Unlock
		if err := rows.Scan(&u.Depth, &u.UnlockedAt); err != nil {
			return nil, fmt.Errorf("progress: scan unlock: %w", err)
		}
		unlocks = append(unlocks, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("progress: iterate unlocks: %w", err)
	}
	return unlocks, nil
}

// Reset forgets every unlock.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM unlocked_depths"); err != nil {
		return fmt.Errorf("progress: reset: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
