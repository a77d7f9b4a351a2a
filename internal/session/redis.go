package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Key prefix for session tokens
const sessionKeyPrefix = "session:"

type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(addr, password string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisStore{
		client: client,
	}, nil
}

func (s *RedisStore) Create(ctx context.Context, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, sessionKeyPrefix+token, "1", ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisStore) Valid(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
