package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"homeserve/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrLockTimeout is returned when a provider's schedule stays locked past the wait budget.
var ErrLockTimeout = errors.New("provider schedule busy")

// ProviderLocker serialises schedule writes per provider. The returned
// unlock func must be called exactly once.
type ProviderLocker interface {
	Lock(ctx context.Context, providerID string) (func(), error)
}

// releaseScript deletes the lock only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisProviderLocker is a SET NX PX lock shared by every API instance.
type RedisProviderLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
}

func NewRedisProviderLocker(client *redis.Client, ttl, wait time.Duration) *RedisProviderLocker {
	return &RedisProviderLocker{client: client, ttl: ttl, wait: wait, retry: 50 * time.Millisecond}
}

func (l *RedisProviderLocker) Lock(ctx context.Context, providerID string) (func(), error) {
	key := utils.ProviderLockPrefix + providerID
	token := uuid.New().String()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}
}

func (l *RedisProviderLocker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), utils.PingTimeout)
	defer cancel()
	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && err != redis.Nil {
		utils.GetLogger().Warn("failed to release provider lock", zap.String("key", key), zap.Error(err))
	}
}

// LocalProviderLocker is an in-process lock for single-instance deployments and tests.
type LocalProviderLocker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
	wait  time.Duration
}

func NewLocalProviderLocker(wait time.Duration) *LocalProviderLocker {
	return &LocalProviderLocker{slots: make(map[string]chan struct{}), wait: wait}
}

func (l *LocalProviderLocker) slot(providerID string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.slots[providerID]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[providerID] = ch
	}
	return ch
}

func (l *LocalProviderLocker) Lock(ctx context.Context, providerID string) (func(), error) {
	ch := l.slot(providerID)
	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case ch <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-ch }) }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, ErrLockTimeout
	}
}
