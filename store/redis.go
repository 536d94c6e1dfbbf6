package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"schedgrid/errors"
)

const keyPrefix = "schedgrid:submission:"

// RedisStore keeps submissions as JSON strings that expire after the TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and checks the connection.
func NewRedisStore(ctx context.Context, addr, pwd string, idx int, ttl time.Duration) (*RedisStore, error) {
	if idx < 0 || idx > 15 {
		return nil, errors.NewError("store.redis", "database index must be between 0 and 15", nil)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pwd,
		DB:       idx,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.NewError("store.redis", "cannot reach "+addr, err)
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func key(id string) string {
	return keyPrefix + id
}

func (s *RedisStore) Put(ctx context.Context, sub Submission) error {
	b, err := json.Marshal(sub)
	if err != nil {
		return errors.NewError("store.redis", "cannot encode submission", err)
	}
	if err := s.client.Set(ctx, key(sub.ID), b, s.ttl).Err(); err != nil {
		return errors.NewError("store.redis", "cannot save submission", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (Submission, error) {
	b, err := s.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Submission{}, errors.ErrNotFound
	} else if err != nil {
		return Submission{}, errors.NewError("store.redis", "cannot load submission", err)
	}
	var sub Submission
	if err := json.Unmarshal(b, &sub); err != nil {
		return Submission{}, errors.NewError("store.redis", "corrupt submission "+id, err)
	}
	return sub, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return errors.NewError("store.redis", "cannot delete submission", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
