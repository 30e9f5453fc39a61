package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"barbershop-attendance/domain/services"
	"barbershop-attendance/pkg/logger"
)

const (
	lockKeyPrefix = "attendance:lock:"

	// A holder that crashes keeps the key until it expires.
	defaultLockTTL = 30 * time.Second

	lockRetryMin = 10 * time.Millisecond
	lockRetryMax = 200 * time.Millisecond
)

// Deletes the key only while it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SubjectLocker is a distributed mutex built on SET NX PX.
type SubjectLocker struct {
	client *redis.Client
	ttl    time.Duration
}

var _ services.SubjectLocker = (*SubjectLocker)(nil)

func NewSubjectLocker(client *RedisClient, ttl time.Duration) *SubjectLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &SubjectLocker{client: client.Client(), ttl: ttl}
}

func (l *SubjectLocker) Acquire(ctx context.Context, key string) (func(), error) {
	redisKey := lockKeyPrefix + key
	token := uuid.NewString()
	wait := lockRetryMin

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		if wait *= 2; wait > lockRetryMax {
			wait = lockRetryMax
		}
	}

	return func() {
		// Release must succeed even when the caller's ctx is already cancelled
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{redisKey}, token).Err(); err != nil {
			logger.Warn(logger.CategoryRedis, "lock_release_failed", "Failed to release subject lock", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}, nil
}
