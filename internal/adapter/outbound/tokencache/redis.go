package tokencache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/filekeeper/go-files-manager/internal/port"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "auth_"

// RedisStore implements port.SessionStore on Redis string keys with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ port.SessionStore = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Issue(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	key := keyPrefix + token
	if err := s.client.Set(ctx, key, strconv.FormatInt(userID, 10), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session token: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, port.ErrUnauthorized
	}

	val, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err == redis.Nil {
		return 0, port.ErrUnauthorized
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve session token: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, port.ErrUnauthorized
	}
	return userID, nil
}

func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	n, err := s.client.Del(ctx, keyPrefix+token).Result()
	if err != nil {
		return fmt.Errorf("failed to revoke session token: %w", err)
	}
	if n == 0 {
		return port.ErrUnauthorized
	}
	return nil
}
