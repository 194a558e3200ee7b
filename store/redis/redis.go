// Package redis is the Redis-backed store.Store. Records are stored as JSON
// under prefix+fingerprint with an optional TTL.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/katalvlaran/relocate/store"
)

// Store implements store.Store on a Redis client.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the expiration of records; 0 keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// New connects to addr.
func New(addr, password string, db int, opts ...Option) *Store {
	return NewFromClient(backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}), opts...)
}

// NewFromClient wraps an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{client: client, prefix: "relocate:result:"}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Store) key(fingerprint string) string { return s.prefix + fingerprint }

// Get loads the record of fingerprint.
func (s *Store) Get(ctx context.Context, fingerprint string) (*store.Record, error) {
	val, err := s.client.Get(ctx, s.key(fingerprint)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get %s: %w", fingerprint, err)
	}
	var r store.Record
	if err = json.Unmarshal(val, &r); err != nil {
		return nil, fmt.Errorf("redis: decode %s: %w", fingerprint, err)
	}

	return &r, nil
}

// Put stores r, replacing any previous record of its fingerprint.
func (s *Store) Put(ctx context.Context, r *store.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("redis: encode %s: %w", r.Fingerprint, err)
	}
	if err = s.client.Set(ctx, s.key(r.Fingerprint), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis: put %s: %w", r.Fingerprint, err)
	}

	return nil
}

// Close closes the client.
func (s *Store) Close() error { return s.client.Close() }
