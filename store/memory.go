package store

import (
	"context"
	"sync"
	"time"

	"schedgrid/errors"
)

type entry struct {
	sub     Submission
	expires time.Time
}

// MemoryStore is a Store for a single process. Expired entries are dropped
// when they are next looked up.
type MemoryStore struct {
	lock    sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, sub Submission) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.entries[sub.ID] = entry{sub: sub, expires: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Submission, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return Submission{}, errors.ErrNotFound
	}
	if !s.now().Before(e.expires) {
		delete(s.entries, id)
		return Submission{}, errors.ErrNotFound
	}
	return e.sub, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.entries, id)
	return nil
}
