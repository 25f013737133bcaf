package util

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OnceLock suppresses redundant work within a TTL window, keyed by an
// operation name and an entity id. It is best-effort only: when Redis is
// unavailable it reports first-time so callers still run, and the database
// constraints stay authoritative.
type OnceLock struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewOnceLock(rdb *redis.Client, ttl time.Duration) *OnceLock {
	return &OnceLock{rdb: rdb, ttl: ttl}
}

// AcquireOnce returns true if this is the first acquisition of
// (operation, id) within the TTL window.
func (l *OnceLock) AcquireOnce(ctx context.Context, operation string, id int) bool {
	if l == nil || l.rdb == nil {
		return true
	}

	key := fmt.Sprintf("once:%s:%d", operation, id)

	ok, err := l.rdb.SetNX(ctx, key, 1, l.ttl).Result()
	if err != nil {
		return true
	}
	return ok
}

// Release drops the lock early, e.g. after the guarded work failed.
func (l *OnceLock) Release(ctx context.Context, operation string, id int) {
	if l == nil || l.rdb == nil {
		return
	}
	_ = l.rdb.Del(ctx, fmt.Sprintf("once:%s:%d", operation, id)).Err()
}
