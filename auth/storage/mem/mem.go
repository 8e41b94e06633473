package mem

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"memberserver/auth/storage"
	"memberserver/auth/users"
)

// Storage keeps users in memory. Used by tests and the demo
// configuration; data does not survive a restart.
type Storage struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]record
	byEmail map[string]uuid.UUID
}

type record struct {
	user   users.User
	secret users.Secret
}

var _ storage.UserStorage = (*Storage)(nil)

func New() *Storage {
	return &Storage{
		byID:    make(map[uuid.UUID]record),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (s *Storage) CreateUser(_ context.Context, user users.User, secret users.Secret) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[user.Email]; ok {
		return storage.ErrEmailTaken
	}
	s.byID[user.ID] = record{user: user, secret: secret}
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *Storage) GetUser(_ context.Context, id uuid.UUID) (users.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return users.User{}, storage.ErrUserNotFound
	}
	return rec.user, nil
}

func (s *Storage) GetUserByEmail(_ context.Context, email string) (users.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return users.User{}, storage.ErrUserNotFound
	}
	return s.byID[id].user, nil
}

func (s *Storage) GetUserSecret(_ context.Context, user users.User) (users.Secret, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case user.ID != uuid.Nil:
		rec, ok := s.byID[user.ID]
		if !ok {
			return users.Secret{}, storage.ErrUserNotFound
		}
		return rec.secret, nil
	case user.Email != "":
		id, ok := s.byEmail[user.Email]
		if !ok {
			return users.Secret{}, storage.ErrUserNotFound
		}
		return s.byID[id].secret, nil
	default:
		return users.Secret{}, errors.New("empty user")
	}
}

// DeleteUser removes a user record. Only tests need it, to simulate a
// session whose user has vanished.
func (s *Storage) DeleteUser(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return
	}
	delete(s.byEmail, rec.user.Email)
	delete(s.byID, id)
}
