// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"homeserve/config"

	"github.com/go-redis/redis/v8"
)

var (
	// AuthCacheClient caches resolved actors per user id.
	AuthCacheClient *redis.Client
	// LockClient holds the per-provider booking locks.
	LockClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

// InitRedis connects both Redis clients. When Redis is disabled the clients
// stay nil and callers fall back to in-process behaviour.
func InitRedis() {
	if !config.AppConfig.RedisEnabled {
		log.Println("Redis disabled; using in-process booking locks and no auth cache")
		return
	}
	AuthCacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	LockClient = newRedisClient(config.AppConfig.RedisLockDB)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := AuthCacheClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
	if err := LockClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis (Locks): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for authorization caching, or nil.
func GetAuthCacheClient() *redis.Client {
	return AuthCacheClient
}

// GetLockClient returns the Redis client for booking locks, or nil.
func GetLockClient() *redis.Client {
	return LockClient
}

// RedisClients lists the connected clients, for health checks.
func RedisClients() []*redis.Client {
	var clients []*redis.Client
	for _, c := range []*redis.Client{AuthCacheClient, LockClient} {
		if c != nil {
			clients = append(clients, c)
		}
	}
	return clients
}
