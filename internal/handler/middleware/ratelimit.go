package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"table-concierge/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const visitorIdleTimeout = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// GuestRateLimiter keeps one token bucket per key (a guest identity or a
// client IP).
type GuestRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

func NewGuestRateLimiter(cfg config.RateLimitConfig) *GuestRateLimiter {
	perMinute := cfg.MessagesPerMinute
	if perMinute <= 0 {
		perMinute = 30
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &GuestRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		now:      time.Now,
	}
}

func (l *GuestRateLimiter) getLimiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = l.now()
	return v.limiter
}

func (l *GuestRateLimiter) Allow(key string) bool {
	return l.getLimiter(key).AllowN(l.now(), 1)
}

// Cleanup forgets keys idle for longer than visitorIdleTimeout and returns
// how many were dropped.
func (l *GuestRateLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-visitorIdleTimeout)
	removed := 0
	for key, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, key)
			removed++
		}
	}
	return removed
}

// StartCleanup runs Cleanup every interval until ctx is done.
func (l *GuestRateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.Cleanup()
			}
		}
	}()
}

// LimitByClientIP applies the limiter per client address.
func (l *GuestRateLimiter) LimitByClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow("ip:" + c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{"message": "Too many requests"},
			})
			return
		}
		c.Next()
	}
}
