package session

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"memberserver/auth/storage"
	"memberserver/auth/users"
)

// Store holds the session-key-to-user-id mapping. Expiry is the
// store's policy; a key that expired simply comes back absent.
type Store interface {
	Put(ctx context.Context, key string, value string) error
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Delete(ctx context.Context, key string) error
}

// Manager reduces an authenticated user to an opaque session key and
// reconstitutes the full user from that key on later requests.
type Manager struct {
	store Store
	users storage.UserStorage
}

func New(store Store, userStorage storage.UserStorage) *Manager {
	return &Manager{
		store: store,
		users: userStorage,
	}
}

func (m *Manager) Establish(ctx context.Context, user users.User) (string, error) {
	key := uuid.NewString()
	if err := m.store.Put(ctx, key, user.ID.String()); err != nil {
		return "", err
	}
	return key, nil
}

// Reconstitute resolves a session key back to a user. A missing or
// stale key is a normal state, not an error: the second return value
// is false and the error is nil. Only store or user-storage I/O
// failures produce an error.
func (m *Manager) Reconstitute(ctx context.Context, key string) (users.User, bool, error) {
	if key == "" {
		return users.User{}, false, nil
	}
	value, ok, err := m.store.Get(ctx, key)
	if err != nil {
		return users.User{}, false, err
	}
	if !ok {
		return users.User{}, false, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return users.User{}, false, nil
	}
	user, err := m.users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return users.User{}, false, nil
		}
		return users.User{}, false, err
	}
	return user, true, nil
}

// Terminate removes the mapping. Terminating an absent key is a no-op.
func (m *Manager) Terminate(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return m.store.Delete(ctx, key)
}
