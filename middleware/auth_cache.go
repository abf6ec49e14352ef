package middleware

import (
	"context"
	"encoding/json"
	"time"

	"homeserve/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	authCachePrefix = "auth:user:"
	authCacheTTL    = 5 * time.Minute
)

// AuthCache holds resolved actors keyed by user id. Entries must be
// invalidated whenever the account is deactivated, deleted or changes role.
type AuthCache interface {
	Get(ctx context.Context, userID string) (models.Actor, bool)
	Set(ctx context.Context, actor models.Actor)
	Invalidate(ctx context.Context, userID string)
}

// RedisAuthCache stores actors as JSON with a fixed TTL.
type RedisAuthCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAuthCache(client *redis.Client) *RedisAuthCache {
	return &RedisAuthCache{client: client, ttl: authCacheTTL}
}

func (c *RedisAuthCache) Get(ctx context.Context, userID string) (models.Actor, bool) {
	var actor models.Actor
	raw, err := c.client.Get(ctx, authCachePrefix+userID).Bytes()
	if err != nil {
		if err != redis.Nil {
			zap.L().Warn("auth cache read failed", zap.Error(err))
		}
		return actor, false
	}
	if err := json.Unmarshal(raw, &actor); err != nil || actor.ID != userID {
		return models.Actor{}, false
	}
	return actor, true
}

func (c *RedisAuthCache) Set(ctx context.Context, actor models.Actor) {
	raw, err := json.Marshal(actor)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, authCachePrefix+actor.ID, raw, c.ttl).Err(); err != nil {
		zap.L().Warn("auth cache write failed", zap.Error(err))
	}
}

func (c *RedisAuthCache) Invalidate(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, authCachePrefix+userID).Err(); err != nil {
		zap.L().Warn("auth cache invalidation failed", zap.String("userID", userID), zap.Error(err))
	}
}
