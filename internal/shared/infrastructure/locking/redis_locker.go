package locking

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	lockKeyPrefix   = "examsched:lock:"
	defaultLockTTL  = 30 * time.Second
	defaultLockPoll = 50 * time.Millisecond
)

// releaseScript deletes a lock only when it still holds our token, so an
// expired lock reacquired by another instance is never released by us.
var releaseScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	end
	return 0
`)

// RedisLocker is a KeyLocker backed by Redis SET NX leases. It serializes
// confirmations across engine instances sharing one store.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	poll   time.Duration
	logger *slog.Logger
}

// NewRedisLocker creates a Redis-backed key locker.
func NewRedisLocker(client *redis.Client, logger *slog.Logger) *RedisLocker {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisLocker{
		client: client,
		ttl:    defaultLockTTL,
		poll:   defaultLockPoll,
		logger: logger,
	}
}

// Acquire blocks until all keys are held or ctx is done.
func (l *RedisLocker) Acquire(ctx context.Context, keys ...string) (Release, error) {
	ordered := dedupeSorted(keys)
	token := uuid.NewString()

	held := make([]string, 0, len(ordered))
	release := func() {
		// Release in reverse acquisition order with a fresh context so
		// cancelled callers still free their locks.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for i := len(held) - 1; i >= 0; i-- {
			if err := releaseScript.Run(releaseCtx, l.client, []string{held[i]}, token).Err(); err != nil && err != redis.Nil {
				l.logger.Warn("failed to release lock", "key", held[i], "error", err)
			}
		}
	}

	for _, key := range ordered {
		redisKey := lockKeyPrefix + key
		if err := l.acquireOne(ctx, redisKey, token); err != nil {
			release()
			return nil, err
		}
		held = append(held, redisKey)
	}

	return release, nil
}

func (l *RedisLocker) acquireOne(ctx context.Context, key, token string) error {
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.poll):
		}
	}
}
