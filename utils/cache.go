// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"innoviahub/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// HistoryCacheClient holds per-user conversation history.
	HistoryCacheClient *redis.Client
	// PendingCacheClient backs the pending-action store in multi-instance deployments.
	PendingCacheClient *redis.Client
)

func newClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

// InitRedis initializes all Redis clients and verifies connectivity.
func InitRedis() {
	CacheClient = newClient(config.AppConfig.RedisCacheDB)
	HistoryCacheClient = newClient(config.AppConfig.RedisHistoryDB)
	PendingCacheClient = newClient(config.AppConfig.RedisPendingDB)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitRedis()
	}
	return CacheClient
}

// GetHistoryCacheClient returns the Redis client for conversation history.
func GetHistoryCacheClient() *redis.Client {
	if HistoryCacheClient == nil {
		InitRedis()
	}
	return HistoryCacheClient
}

// GetPendingCacheClient returns the Redis client for pending actions.
func GetPendingCacheClient() *redis.Client {
	if PendingCacheClient == nil {
		InitRedis()
	}
	return PendingCacheClient
}
