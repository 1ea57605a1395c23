package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/panacare/panacare-api/internal/platform/auth"
)

// RateLimitConfig holds the token-bucket settings for the API group.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultRateLimitConfig returns the settings used when none are configured.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		BurstSize:         200,
	}
}

// staleAfter is how long an untouched bucket survives before it is pruned.
const staleAfter = 10 * time.Minute

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// limiter maps caller keys to token buckets. Buckets refill lazily on
// access; idle ones are swept out at most once per stale window.
type limiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	rate      float64
	burst     float64
	lastPrune time.Time
}

func newLimiter(cfg RateLimitConfig) *limiter {
	return &limiter{
		buckets:   make(map[string]*bucket),
		rate:      cfg.RequestsPerSecond,
		burst:     float64(cfg.BurstSize),
		lastPrune: time.Now(),
	}
}

// take consumes one token for key. When the bucket is empty it reports the
// whole seconds to wait until a token becomes available.
func (l *limiter) take(key string) (allowed bool, retryAfter int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.pruneLocked(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.burst}
		l.buckets[key] = b
	} else {
		b.tokens += now.Sub(b.lastSeen).Seconds() * l.rate
		if b.tokens > l.burst {
			b.tokens = l.burst
		}
	}
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	if l.rate <= 0 {
		return false, 1
	}
	return false, int(math.Ceil((1 - b.tokens) / l.rate))
}

func (l *limiter) pruneLocked(now time.Time) {
	if now.Sub(l.lastPrune) < staleAfter {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > staleAfter {
			delete(l.buckets, key)
		}
	}
	l.lastPrune = now
}

// RateLimit throttles requests per caller. Authenticated callers are keyed
// by user id and IP together, anonymous callers by IP alone.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	l := newLimiter(cfg)
	limitValue := strconv.FormatFloat(cfg.RequestsPerSecond, 'f', 0, 64)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if userID := auth.UserIDFromContext(c.Request().Context()); userID != "" {
				key = userID + ":" + key
			}

			allowed, retryAfter := l.take(key)
			header := c.Response().Header()
			header.Set("X-RateLimit-Limit", limitValue)
			if !allowed {
				header.Set("Retry-After", strconv.Itoa(retryAfter))
				header.Set("X-RateLimit-Remaining", "0")
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
