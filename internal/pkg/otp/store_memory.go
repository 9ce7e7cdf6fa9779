package otp

import (
	"context"
	"hash/fnv"
	"sync"
	"time"
)

// DefaultMemoryShards is the shard count used when NewMemoryStore gets n <= 0.
const DefaultMemoryShards = 32

// MemoryStore is a process-local Store split into independently locked shards.
type MemoryStore[P any] struct {
	shards []*memoryShard[P]
}

type memoryShard[P any] struct {
	mu      sync.Mutex
	entries map[string]*Entry[P]
}

// NewMemoryStore returns an empty store with n shards.
func NewMemoryStore[P any](n int) *MemoryStore[P] {
	if n <= 0 {
		n = DefaultMemoryShards
	}

	shards := make([]*memoryShard[P], n)
	for i := range shards {
		shards[i] = &memoryShard[P]{entries: make(map[string]*Entry[P])}
	}
	return &MemoryStore[P]{shards: shards}
}

func (s *MemoryStore[P]) shard(subject string) *memoryShard[P] {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subject))
	return s.shards[h.Sum32()%uint32(len(s.shards))]
}

func (s *MemoryStore[P]) Get(_ context.Context, subject string) (*Entry[P], error) {
	sh := s.shard(subject)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.entries[subject]
	if !ok {
		return nil, ErrEntryNotFound
	}
	return e.clone(), nil
}

// Update runs fn while holding the subject's shard lock.
func (s *MemoryStore[P]) Update(ctx context.Context, subject string, fn UpdateFunc[P]) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sh := s.shard(subject)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	next, err := fn(sh.entries[subject].clone())
	if err != nil {
		return err
	}

	if next == nil {
		delete(sh.entries, subject)
		return nil
	}
	sh.entries[subject] = next.clone()
	return nil
}

func (s *MemoryStore[P]) Delete(_ context.Context, subject string) error {
	sh := s.shard(subject)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	delete(sh.entries, subject)
	return nil
}

// DeleteExpired locks one shard at a time.
func (s *MemoryStore[P]) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	removed := 0
	for _, sh := range s.shards {
		if err := ctx.Err(); err != nil {
			return removed, err
		}

		sh.mu.Lock()
		for subject, e := range sh.entries {
			if e.Expired(now) {
				delete(sh.entries, subject)
				removed++
			}
		}
		sh.mu.Unlock()
	}
	return removed, nil
}

// Len returns the number of stored entries, expired ones included.
func (s *MemoryStore[P]) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		n += len(sh.entries)
		sh.mu.Unlock()
	}
	return n
}
