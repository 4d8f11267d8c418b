package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares one token pair between counter terminals. Both keys are
// written and deleted in a single transaction pipeline so readers never see
// one token without the other.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "pawnbook"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Load(ctx context.Context) (Pair, error) {
	vals, err := s.client.MGet(ctx, s.accessKey(), s.refreshKey()).Result()
	if err != nil {
		return Pair{}, fmt.Errorf("redis store: load: %w", err)
	}
	var p Pair
	if v, ok := vals[0].(string); ok {
		p.Access = v
	}
	if v, ok := vals[1].(string); ok {
		p.Refresh = v
	}
	if p.Access == "" && p.Refresh == "" {
		return Pair{}, ErrNotFound
	}
	return p, nil
}

func (s *RedisStore) SetPair(ctx context.Context, p Pair) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.accessKey(), p.Access, 0)
	pipe.Set(ctx, s.refreshKey(), p.Refresh, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis store: set pair: %w", err)
	}
	return nil
}

func (s *RedisStore) SetAccess(ctx context.Context, access string) error {
	if _, err := s.client.Get(ctx, s.refreshKey()).Result(); err == redis.Nil {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("redis store: set access: %w", err)
	}
	if err := s.client.Set(ctx, s.accessKey(), access, 0).Err(); err != nil {
		return fmt.Errorf("redis store: set access: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.accessKey(), s.refreshKey()).Err(); err != nil {
		return fmt.Errorf("redis store: clear: %w", err)
	}
	return nil
}

func (s *RedisStore) accessKey() string  { return s.prefix + ":access_token" }
func (s *RedisStore) refreshKey() string { return s.prefix + ":refresh_token" }
