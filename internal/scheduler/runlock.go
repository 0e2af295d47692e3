package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	runLockPrefix     = "orderflow:runlock:"
	defaultRunLockTTL = 30 * time.Minute
)

// ErrLockHeld is returned by Acquire when another run holds the lock.
var ErrLockHeld = errors.New("run lock held")

// Release only deletes the key while it still carries our token, so a run
// that outlived its TTL cannot free a successor's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RunLock keeps two instances of the same recurring job from overlapping.
type RunLock struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

func NewRunLock(rdb redis.UniversalClient, ttl time.Duration) *RunLock {
	if ttl <= 0 {
		ttl = defaultRunLockTTL
	}
	return &RunLock{rdb: rdb, ttl: ttl}
}

// Acquire takes the lock for name. The returned func releases it.
func (l *RunLock) Acquire(ctx context.Context, name string) (func(context.Context) error, error) {
	key := runLockPrefix + name
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLockHeld
	}

	return func(ctx context.Context) error {
		return releaseScript.Run(ctx, l.rdb, []string{key}, token).Err()
	}, nil
}
