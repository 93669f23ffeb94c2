package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// Lock is a named, timeout-bounded mutual-exclusion token held for the
// duration of one extraction run
type Lock interface {
	// Acquire attempts to take the named lock, waiting up to the
	// client's bounded retry budget. Returns false when another holder
	// keeps the lock.
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)
	// Release frees the named lock. Safe to call only by the holder.
	Release(ctx context.Context, name string) error
}

// RedisLock implements Lock over redislock. One token per name is
// tracked so Release can find the obtained lock again.
type RedisLock struct {
	locker *redislock.Client

	mu   sync.Mutex
	held map[string]*redislock.Lock
}

// NewRedisLock creates a lock client over an existing redis connection
func NewRedisLock(rdb *redis.Client) *RedisLock {
	return &RedisLock{
		locker: redislock.New(rdb),
		held:   make(map[string]*redislock.Lock),
	}
}

// Acquire obtains the named lock with a bounded linear-backoff wait.
// It fails rather than queueing indefinitely.
func (l *RedisLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	opts := &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(500*time.Millisecond), 20),
	}

	lk, err := l.locker.Obtain(ctx, name, ttl, opts)
	if errors.Is(err, redislock.ErrNotObtained) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	l.mu.Lock()
	l.held[name] = lk
	l.mu.Unlock()
	return true, nil
}

// Release frees the named lock if this client holds it
func (l *RedisLock) Release(ctx context.Context, name string) error {
	l.mu.Lock()
	lk, ok := l.held[name]
	delete(l.held, name)
	l.mu.Unlock()

	if !ok {
		return nil
	}
	return lk.Release(ctx)
}
