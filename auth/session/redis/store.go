package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"memberserver/auth/session"
)

const keyPrefix = "session:"

type Store struct {
	client     *redis.Client
	expiration time.Duration
}

var _ session.Store = (*Store)(nil)

func New(ctx context.Context, addr string, expiration time.Duration) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Store{
		client:     client,
		expiration: expiration,
	}, nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	return s.client.Set(ctx, keyPrefix+key, value, s.expiration).Err()
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, keyPrefix+key).Err()
}
