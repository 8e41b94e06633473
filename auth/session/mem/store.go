package mem

import (
	"context"
	"sync"
	"time"

	"memberserver/auth/session"
)

type entry struct {
	value    string
	deadline time.Time
}

type Store struct {
	mu         sync.RWMutex
	sessions   map[string]entry
	expiration time.Duration
	now        func() time.Time
}

var _ session.Store = (*Store)(nil)

func New(expiration time.Duration) *Store {
	return &Store{
		sessions:   make(map[string]entry),
		expiration: expiration,
		now:        time.Now,
	}
}

func (s *Store) Put(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[key] = entry{
		value:    value,
		deadline: s.now().Add(s.expiration),
	}
	return nil
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	e, ok := s.sessions[key]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if s.now().After(e.deadline) {
		s.mu.Lock()
		delete(s.sessions, key)
		s.mu.Unlock()
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, key)
	return nil
}
