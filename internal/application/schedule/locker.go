package schedule

import (
	"context"
	"time"

	"weather-reminder/pkg/redis"

	"github.com/go-co-op/gocron/v2"
)

// RedisLocker lets a single replica run each scheduled minute of a job.
// The lock key carries the minute and is left to expire, so a replica
// whose clock is a few seconds late cannot run the same slot again.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

var _ gocron.Locker = (*RedisLocker)(nil)

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl < time.Minute {
		ttl = time.Minute
	}
	return &RedisLocker{client: client, ttl: ttl, now: time.Now}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (gocron.Lock, error) {
	lock := redis.NewLock(l.client, l.slotKey(key), redis.LockOptions{TTL: l.ttl})
	if err := lock.Lock(ctx); err != nil {
		return nil, err
	}
	return slotLock{}, nil
}

func (l *RedisLocker) slotKey(key string) string {
	return "job::" + key + "::" + l.now().UTC().Truncate(time.Minute).Format("200601021504")
}

type slotLock struct{}

func (slotLock) Unlock(context.Context) error {
	return nil
}
