package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
)

var _ domain.DeviceStorage = (*RedisStorage)(nil)

// RedisStorage keeps device storage in a redis hash so that several companion
// processes on one device share it.
type RedisStorage struct {
	rdb *redis.Client
	key string
}

func NewRedisStorage(rdb *redis.Client, namespace string) *RedisStorage {
	if namespace == "" {
		namespace = "default"
	}
	return &RedisStorage{
		rdb: rdb,
		key: fmt.Sprintf("kyool:storage:%s", namespace),
	}
}

func (s *RedisStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.HGet(ctx, s.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("repository: get item failed: %w", err)
	}
	return val, true, nil
}

func (s *RedisStorage) SetItem(ctx context.Context, key, value string) error {
	if err := s.rdb.HSet(ctx, s.key, key, value).Err(); err != nil {
		return fmt.Errorf("repository: set item failed: %w", err)
	}
	return nil
}

func (s *RedisStorage) RemoveItem(ctx context.Context, key string) error {
	if err := s.rdb.HDel(ctx, s.key, key).Err(); err != nil {
		return fmt.Errorf("repository: remove item failed: %w", err)
	}
	return nil
}
