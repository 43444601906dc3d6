// Package slotlock serializes booking attempts for the same venue and day
// across API instances with a short-lived Redis key.
package slotlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/venuebook/venuebook-api/internal/pkg/caldate"
)

var ErrSlotBusy = errors.New("slot is locked by another request")

const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then return redis.call("DEL", KEYS[1]) else return 0 end`

// Locker hands out per-slot locks. A nil Locker grants every lock.
type Locker struct {
	rdb   *redis.Client
	ttl   time.Duration
	token func() string
}

// New returns nil when rdb is nil
func New(rdb *redis.Client, ttl time.Duration) *Locker {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &Locker{rdb: rdb, ttl: ttl, token: func() string { return uuid.New().String() }}
}

// Key returns the Redis key guarding a venue's day
func Key(venueID uuid.UUID, day caldate.Date) string {
	return fmt.Sprintf("slot:%s:%s", venueID, day)
}

// Acquire takes the lock for (venueID, day). The returned release func is
// always non-nil. Redis failures are logged and the lock is treated as held.
func (l *Locker) Acquire(ctx context.Context, venueID uuid.UUID, day caldate.Date) (func(), error) {
	noop := func() {}
	if l == nil {
		return noop, nil
	}

	key := Key(venueID, day)
	token := l.token()

	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("slot lock unavailable, relying on storage constraint")
		return noop, nil
	}
	if !ok {
		return noop, ErrSlotBusy
	}

	return func() {
		// The request context may already be cancelled.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := l.rdb.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to release slot lock")
		}
	}, nil
}
