package user

import (
	"context"
	"errors"
	"time"

	"unisched/utils"

	"github.com/go-redis/redis/v8"
)

// TokenStore remembers revoked tokens until they would have expired anyway.
type TokenStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func revokedKey(token string) string {
	return utils.AuthCachePrefix + "revoked:" + utils.HashToken(token)
}

func (s *RedisTokenStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	return s.client.Set(ctx, revokedKey(token), 1, ttl).Err()
}

func (s *RedisTokenStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := s.client.Get(ctx, revokedKey(token)).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, err
	}
}
