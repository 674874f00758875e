package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockNotAcquired is returned when another owner holds the lock.
var ErrLockNotAcquired = errors.New("lock not acquired")

// ErrLockNotHeld is returned when releasing or refreshing a lock owned by someone else.
var ErrLockNotHeld = errors.New("lock was not held by this client")

var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

var refreshScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`)

// LockOptions controls expiration and acquisition retries.
type LockOptions struct {
	TTL        time.Duration
	RetryDelay time.Duration
	// MaxRetries of zero means a single attempt.
	MaxRetries int
}

func DefaultLockOptions() LockOptions {
	return LockOptions{
		TTL:        30 * time.Second,
		RetryDelay: 100 * time.Millisecond,
	}
}

// Lock is a single owner lock backed by SET NX with a random token.
type Lock struct {
	client *Client
	key    string
	value  string
	opts   LockOptions
}

func NewLock(client *Client, key string, opts LockOptions) *Lock {
	if opts.TTL <= 0 {
		opts.TTL = DefaultLockOptions().TTL
	}
	return &Lock{
		client: client,
		key:    client.config.namespaced("lock::" + key),
		value:  uuid.NewString(),
		opts:   opts,
	}
}

// Key returns the full redis key of the lock.
func (l *Lock) Key() string {
	return l.key
}

// Lock acquires the lock, retrying up to MaxRetries times.
func (l *Lock) Lock(ctx context.Context) error {
	for attempt := 0; ; attempt++ {
		acquired, err := l.client.GetClient().SetNX(ctx, l.key, l.value, l.opts.TTL).Result()
		if err != nil {
			return fmt.Errorf("failed to acquire lock %s: %w", l.key, err)
		}
		if acquired {
			return nil
		}
		if attempt >= l.opts.MaxRetries {
			return fmt.Errorf("%w: %s after %d attempts", ErrLockNotAcquired, l.key, attempt+1)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.opts.RetryDelay):
		}
	}
}

// Unlock releases the lock if this instance still owns it.
func (l *Lock) Unlock(ctx context.Context) error {
	result, err := unlockScript.Run(ctx, l.client.GetClient(), []string{l.key}, l.value).Int64()
	if err != nil {
		return fmt.Errorf("failed to release lock %s: %w", l.key, err)
	}
	if result == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// Refresh extends the expiration of an owned lock by TTL.
func (l *Lock) Refresh(ctx context.Context) error {
	result, err := refreshScript.Run(ctx, l.client.GetClient(), []string{l.key}, l.value, l.opts.TTL.Milliseconds()).Int64()
	if err != nil {
		return fmt.Errorf("failed to refresh lock %s: %w", l.key, err)
	}
	if result == 0 {
		return ErrLockNotHeld
	}
	return nil
}
