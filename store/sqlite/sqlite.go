// Package sqlite is the SQLite-backed store.Store.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/katalvlaran/relocate/store"
)

//go:embed schema.sql
var schemaSQL string

// Store keeps one row per fingerprint.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	// modernc serializes writers per connection; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if _, err = db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Get loads the record of fingerprint.
func (s *Store) Get(ctx context.Context, fingerprint string) (*store.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, cost, complete, turns, nodes, elapsed_ns, created_at
		   FROM results WHERE fingerprint = ?`, fingerprint)

	var (
		r        = store.Record{Fingerprint: fingerprint}
		complete int
		turns    string
		elapsed  int64
		created  string
	)
	err := row.Scan(&r.ID, &r.Name, &r.Cost, &complete, &turns, &r.Nodes, &elapsed, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get %s: %w", fingerprint, err)
	}
	if err = json.Unmarshal([]byte(turns), &r.Turns); err != nil {
		return nil, fmt.Errorf("sqlite: decode turns: %w", err)
	}
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("sqlite: decode created_at: %w", err)
	}
	r.Complete = complete != 0
	r.Elapsed = time.Duration(elapsed)

	return &r, nil
}

// Put inserts r or replaces the row of its fingerprint.
func (s *Store) Put(ctx context.Context, r *store.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	turns, err := json.Marshal(r.Turns)
	if err != nil {
		return fmt.Errorf("sqlite: encode turns: %w", err)
	}
	complete := 0
	if r.Complete {
		complete = 1
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO results (fingerprint, id, name, cost, complete, turns, nodes, elapsed_ns, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(fingerprint) DO UPDATE SET
		   id = excluded.id, name = excluded.name, cost = excluded.cost,
		   complete = excluded.complete, turns = excluded.turns, nodes = excluded.nodes,
		   elapsed_ns = excluded.elapsed_ns, created_at = excluded.created_at`,
		r.Fingerprint, r.ID, r.Name, r.Cost, complete, string(turns),
		int64(r.Nodes), int64(r.Elapsed), r.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("sqlite: put %s: %w", r.Fingerprint, err)
	}

	return nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }
