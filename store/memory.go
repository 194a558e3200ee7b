package store

import (
	"context"
	"sync"
)

// Memory is a process-local Store.
type Memory struct {
	mu      sync.RWMutex
	records map[string]Record
	closed  bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]Record)}
}

// Get returns a deep copy of the record stored under fingerprint.
func (m *Memory) Get(_ context.Context, fingerprint string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	r, ok := m.records[fingerprint]
	if !ok {
		return nil, ErrNotFound
	}

	return r.Clone(), nil
}

// Put stores a deep copy of r.
func (m *Memory) Put(_ context.Context, r *Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.records[r.Fingerprint] = *r.Clone()

	return nil
}

// Close drops all records.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.records = nil

	return nil
}
