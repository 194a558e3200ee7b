// SPDX-License-Identifier: MIT
// Package: relocate/search
//
// memo.go - dominance tables keyed by board signature.
//
// visit(sig, cost) reports whether a state reached at cost must be expanded:
// true when the state is new or was only seen at a strictly higher cost, in
// which case cost is recorded. The shared variant stripes the table over
// independently locked shards chosen by xxhash, so concurrent workers only
// contend on the same shard.

package search

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

type memo interface {
	visit(sig []byte, cost int64) bool
	size() int
}

// localMemo is the single-goroutine table.
type localMemo map[string]int64

func (m localMemo) visit(sig []byte, cost int64) bool {
	if seen, ok := m[string(sig)]; ok && seen <= cost {
		return false
	}
	m[string(sig)] = cost

	return true
}

func (m localMemo) size() int { return len(m) }

const memoShards = 64

type memoShard struct {
	mu sync.Mutex
	m  map[string]int64
}

// sharedMemo is safe for concurrent use.
type sharedMemo struct {
	shards [memoShards]memoShard
}

func newSharedMemo() *sharedMemo {
	s := &sharedMemo{}
	for i := range s.shards {
		s.shards[i].m = make(map[string]int64)
	}

	return s
}

func (s *sharedMemo) visit(sig []byte, cost int64) bool {
	sh := &s.shards[xxhash.Sum64(sig)%memoShards]
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if seen, ok := sh.m[string(sig)]; ok && seen <= cost {
		return false
	}
	sh.m[string(sig)] = cost

	return true
}

func (s *sharedMemo) size() int {
	n := 0
	for i := range s.shards {
		s.shards[i].mu.Lock()
		n += len(s.shards[i].m)
		s.shards[i].mu.Unlock()
	}

	return n
}
