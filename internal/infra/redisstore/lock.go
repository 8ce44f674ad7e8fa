package redisstore

import (
	"context"
	"errors"
	"time"

	"coupon-service/internal/pkg/errs"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const lockKeyPrefix = "coupon_lock:"

// LockManager hands out cluster-wide mutexes with a bounded acquisition wait
// and a bounded hold time, so a crashed holder can never pin a campaign
// forever.
type LockManager struct {
	rs          *redsync.Redsync
	waitTimeout time.Duration
	holdTTL     time.Duration
}

func NewLockManager(client *redis.Client, waitTimeout, holdTTL time.Duration) *LockManager {
	pool := goredis.NewPool(client)
	return &LockManager{
		rs:          redsync.New(pool),
		waitTimeout: waitTimeout,
		holdTTL:     holdTTL,
	}
}

// Acquire blocks for at most the configured wait timeout and returns a
// release closure. Failure to acquire is a typed, retryable rejection, not a
// crash.
func (m *LockManager) Acquire(ctx context.Context, campaignCode string) (func() error, error) {
	retryDelay := 100 * time.Millisecond
	tries := int(m.waitTimeout/retryDelay) + 1

	mutex := m.rs.NewMutex(
		lockKeyPrefix+campaignCode,
		redsync.WithExpiry(m.holdTTL),
		redsync.WithTries(tries),
		redsync.WithRetryDelay(retryDelay),
	)

	lockCtx, cancel := context.WithTimeout(ctx, m.waitTimeout)
	defer cancel()

	if err := mutex.LockContext(lockCtx); err != nil {
		var taken *redsync.ErrTaken
		if errors.As(err, &taken) || errors.Is(err, redsync.ErrFailed) || errors.Is(err, context.DeadlineExceeded) {
			return nil, errs.Mark(err, errs.ErrLockFailed)
		}
		return nil, errs.Wrap(err, "lock acquisition failed")
	}

	release := func() error {
		ok, err := mutex.Unlock()
		if err != nil {
			return errs.Wrap(err, "lock release failed")
		}
		if !ok {
			return errs.New("lock was not held at release")
		}
		return nil
	}
	return release, nil
}
