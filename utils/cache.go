// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"unisched/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var (
	// CacheClient is the generic cache client (room locks, rate state).
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for issued-token tracking.
	AuthCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

// InitRedis initializes the Redis clients. An unreachable server is logged but
// not fatal: token revocation degrades to signature-only checks.
func InitRedis() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for name, client := range map[string]*redis.Client{"cache": CacheClient, "auth": AuthCacheClient} {
		if err := client.Ping(ctx).Err(); err != nil {
			GetLogger().Warn("Redis not reachable", zap.String("client", name), zap.Error(err))
		}
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitRedis()
	}
	return CacheClient
}

// GetAuthCacheClient returns the Redis client for token tracking.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitRedis()
	}
	return AuthCacheClient
}

// CloseRedis closes every initialized client.
func CloseRedis() {
	for _, c := range []*redis.Client{CacheClient, AuthCacheClient} {
		if c != nil {
			_ = c.Close()
		}
	}
}
