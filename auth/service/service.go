package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"memberserver/auth/storage"
	"memberserver/auth/users"
	"memberserver/internal/normalize"
)

// Expected authentication outcomes. Anything else returned by SignUp or
// Login is a storage failure and propagates unchanged.
var (
	ErrEmailTaken    = errors.New("this email is already in use")
	ErrNoUser        = errors.New("no user found")
	ErrWrongPassword = errors.New("wrong password")
)

type Hasher interface {
	Hash(plaintext string) (users.Secret, error)
	Verify(plaintext string, secret users.Secret) bool
}

type Service struct {
	storage storage.UserStorage
	hasher  Hasher
	log     *logrus.Entry
}

func New(l *logrus.Logger, userStorage storage.UserStorage, hasher Hasher) *Service {
	return &Service{
		storage: userStorage,
		hasher:  hasher,
		log:     l.WithField("from", "auth-service"),
	}
}

func (s *Service) SignUp(ctx context.Context, email string, password string) (users.User, error) {
	email = normalize.Email(email)
	_, err := s.storage.GetUserByEmail(ctx, email)
	if err == nil {
		return users.User{}, ErrEmailTaken
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return users.User{}, err
	}
	secret, err := s.hasher.Hash(password)
	if err != nil {
		return users.User{}, err
	}
	user := users.User{
		ID:           uuid.New(),
		Email:        email,
		RegisteredAt: time.Now(),
	}
	err = s.storage.CreateUser(ctx, user, secret)
	if err != nil {
		// the unique index on email closes the race between the
		// lookup above and this insert
		if errors.Is(err, storage.ErrEmailTaken) {
			return users.User{}, ErrEmailTaken
		}
		return users.User{}, err
	}
	s.log.WithField("user", user.ID).Info("new user registered")
	return user, nil
}

func (s *Service) Login(ctx context.Context, email string, password string) (users.User, error) {
	user, err := s.storage.GetUserByEmail(ctx, normalize.Email(email))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return users.User{}, ErrNoUser
		}
		return users.User{}, err
	}
	secret, err := s.storage.GetUserSecret(ctx, user)
	if err != nil {
		return users.User{}, err
	}
	if !s.hasher.Verify(password, secret) {
		return users.User{}, ErrWrongPassword
	}
	return user, nil
}
