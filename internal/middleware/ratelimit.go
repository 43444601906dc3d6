package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/venuebook/venuebook-api/internal/pkg/response"
)

// RateLimiter is a fixed-window per-IP limiter backed by Redis.
type RateLimiter struct {
	rdb    redis.Cmdable
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRateLimiter returns nil when rdb is nil or limit is not positive;
// a nil limiter lets every request through.
func NewRateLimiter(rdb *redis.Client, prefix string, limit int, window time.Duration) *RateLimiter {
	if rdb == nil || limit <= 0 || window <= 0 {
		return nil
	}
	return &RateLimiter{rdb: rdb, prefix: prefix, limit: limit, window: window, now: time.Now}
}

func (l *RateLimiter) key(ip string) string {
	bucket := l.now().UnixNano() / int64(l.window)
	return fmt.Sprintf("%s:%s:%d", l.prefix, ip, bucket)
}

// retryAfter is the window in whole seconds, at least 1
func (l *RateLimiter) retryAfter() string {
	secs := int64((l.window + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.FormatInt(secs, 10)
}

// Handler returns the limiting middleware
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	if l == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key := l.key(getClientIP(r))

		count, err := l.rdb.Incr(ctx, key).Result()
		if err != nil {
			// Redis outages must not block bookings
			log.Warn().Err(err).Str("key", key).Msg("rate limit check failed")
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			if err := l.rdb.PExpire(ctx, key, l.window).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limit expire failed")
			}
		}

		remaining := int64(l.limit) - count
		if remaining < 0 {
			remaining = 0
		}
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(l.limit) {
			w.Header().Set("Retry-After", l.retryAfter())
			response.TooManyRequests(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
