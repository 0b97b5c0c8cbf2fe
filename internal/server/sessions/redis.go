package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces session keys in Redis.
const keyPrefix = "auth_"

// RedisStore keeps sessions in Redis with a per-key TTL, so expiry needs no
// background eviction of our own.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// RedisConfig holds connection settings for the session Redis instance.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStore connects to Redis and returns a session store with the given
// token TTL. A non-positive ttl falls back to DefaultTTL.
func NewRedisStore(cfg RedisConfig, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func sessionKey(token string) string { return keyPrefix + token }

// Create stores a fresh uuid token mapped to userID with the store TTL.
func (s *RedisStore) Create(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := s.rdb.Set(ctx, sessionKey(token), userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("redis error: %w", err)
	}
	return token, nil
}

// Resolve returns the user id for token, or "" when the key is absent
// (never created, expired, or revoked).
func (s *RedisStore) Resolve(ctx context.Context, token string) (string, error) {
	userID, err := s.rdb.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis error: %w", err)
	}
	return userID, nil
}

// Revoke deletes the session key. Deleting an absent key is not an error.
func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

// Ping checks connectivity to Redis.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
