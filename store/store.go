// Package store persists solve results keyed by scenario fingerprint.
//
// Backends implement Store; the in-memory one lives here, durable ones in
// store/sqlite and store/redis. All backends share the contract exercised by
// store/storetest.RunContract.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/relocate/search"
	"github.com/katalvlaran/relocate/topology"
	"github.com/katalvlaran/relocate/turn"
)

// Sentinel errors shared by all backends.
var (
	// ErrNotFound indicates no record exists for the fingerprint.
	ErrNotFound = errors.New("store: record not found")

	// ErrInvalidRecord indicates a record without fingerprint or id.
	ErrInvalidRecord = errors.New("store: invalid record")

	// ErrClosed indicates use of a closed store.
	ErrClosed = errors.New("store: closed")
)

// Store is a fingerprint-keyed result cache. Put replaces any previous
// record of the same fingerprint.
type Store interface {
	Get(ctx context.Context, fingerprint string) (*Record, error)
	Put(ctx context.Context, r *Record) error
	Close() error
}

// TurnRecord is a turn with slot and class names instead of ids.
type TurnRecord struct {
	Class string   `json:"class"`
	Path  []string `json:"path"`
	Cost  int64    `json:"cost"`
}

// Record is one persisted solve result.
type Record struct {
	ID          string        `json:"id"`
	Fingerprint string        `json:"fingerprint"`
	Name        string        `json:"name,omitempty"`
	Cost        int64         `json:"cost"`
	Complete    bool          `json:"complete"`
	Turns       []TurnRecord  `json:"turns"`
	Nodes       uint64        `json:"nodes"`
	Elapsed     time.Duration `json:"elapsed"`
	CreatedAt   time.Time     `json:"created_at"`
}

// NewRecord converts a search result into a Record with a fresh time-ordered id.
func NewRecord(fingerprint, name string, t *topology.Topology, res search.Result) (*Record, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("NewRecord: %w", err)
	}

	return &Record{
		ID:          id.String(),
		Fingerprint: fingerprint,
		Name:        name,
		Cost:        res.Cost,
		Complete:    res.Complete,
		Turns:       NamedTurns(t, res.Turns),
		Nodes:       res.Stats.Nodes,
		Elapsed:     res.Stats.Elapsed,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// NamedTurns renders turns with the names of t.
func NamedTurns(t *topology.Topology, turns []turn.Turn) []TurnRecord {
	out := make([]TurnRecord, len(turns))
	for i, tr := range turns {
		path := make([]string, len(tr.Path))
		for j, id := range tr.Path {
			path[j] = t.Name(id)
		}
		out[i] = TurnRecord{Class: t.ClassName(tr.Class), Path: path, Cost: tr.Cost}
	}

	return out
}

// Resolve maps the named turns back onto t.
func (r *Record) Resolve(t *topology.Topology) ([]turn.Turn, error) {
	out := make([]turn.Turn, len(r.Turns))
	for i, tr := range r.Turns {
		c, err := t.ClassByName(tr.Class)
		if err != nil {
			return nil, fmt.Errorf("Resolve: turn %d: %w", i, err)
		}
		path := make([]topology.SlotID, len(tr.Path))
		for j, name := range tr.Path {
			if path[j], err = t.Lookup(name); err != nil {
				return nil, fmt.Errorf("Resolve: turn %d: %w", i, err)
			}
		}
		out[i] = turn.Turn{Class: c, Path: path, Cost: tr.Cost}
	}

	return out, nil
}

// Clone returns a copy of r that shares no slices with it.
func (r *Record) Clone() *Record {
	c := *r
	if r.Turns != nil {
		c.Turns = make([]TurnRecord, len(r.Turns))
		for i, tr := range r.Turns {
			tr.Path = append([]string(nil), tr.Path...)
			c.Turns[i] = tr
		}
	}

	return &c
}

// Validate checks the fields every backend relies on.
func (r *Record) Validate() error {
	if r == nil || r.Fingerprint == "" || r.ID == "" {
		return ErrInvalidRecord
	}

	return nil
}
