package utils

import (
	"context"
	"fmt"
	"time"

	"slate/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient backs the KV store (sessions, profiles, verification codes, autonomy plans).
var CacheClient *redis.Client

func newRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

// ConnectCache creates the KV store client and pings it. The client is kept
// even when the ping fails so the health monitor can report it.
func ConnectCache(ctx context.Context) (*redis.Client, error) {
	if CacheClient == nil {
		CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := CacheClient.Ping(ctx).Err(); err != nil {
		return CacheClient, fmt.Errorf("redis %s unreachable: %w", config.AppConfig.RedisAddr, err)
	}
	return CacheClient, nil
}
