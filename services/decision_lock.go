package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// ErrDecisionInProgress is returned when the seller already has an
// accept/reject request in flight.
var ErrDecisionInProgress = errors.New("decision already in progress")

// decisionLockTTL caps how long a stuck decision can block the seller's
// review view before the lock expires on its own.
const decisionLockTTL = 30 * time.Second

// DecisionLocker serializes suggestion decisions per seller. The review view
// allows one outstanding decision at a time, across all of its rows.
type DecisionLocker interface {
	Lock(ctx context.Context, sellerID string) (release func(), err error)
}

// RedisDecisionLocker implements DecisionLocker on redislock. No retry: a
// held lock rejects immediately.
type RedisDecisionLocker struct {
	locker *redislock.Client
}

func NewRedisDecisionLocker(rdb *redis.Client) *RedisDecisionLocker {
	return &RedisDecisionLocker{locker: redislock.New(rdb)}
}

func (l *RedisDecisionLocker) Lock(ctx context.Context, sellerID string) (func(), error) {
	key := fmt.Sprintf("dash:decision:%s", sellerID)
	lock, err := l.locker.Obtain(ctx, key, decisionLockTTL, nil)
	if err == redislock.ErrNotObtained {
		return nil, ErrDecisionInProgress
	} else if err != nil {
		return nil, err
	}

	release := func() {
		// the request context may already be cancelled by the time we release
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = lock.Release(releaseCtx)
	}
	return release, nil
}
