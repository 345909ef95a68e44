package webserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a sliding-window counter keyed by client IP. State is
// process-local: each gateway instance enforces its own budget.
type RateLimiter struct {
	mu     sync.Mutex
	seen   map[string][]time.Time
	rate   int
	window time.Duration
}

func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		seen:   make(map[string][]time.Time),
		rate:   rate,
		window: window,
	}
	go rl.evictLoop()
	return rl
}

// Allow records one attempt for key and reports whether it fits the window.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	recent := rl.prune(key, time.Now())
	if len(recent) >= rl.rate {
		rl.seen[key] = recent
		return false
	}
	rl.seen[key] = append(recent, time.Now())
	return true
}

// prune drops timestamps older than the window. Caller holds mu.
func (rl *RateLimiter) prune(key string, now time.Time) []time.Time {
	kept := rl.seen[key][:0]
	for _, t := range rl.seen[key] {
		if now.Sub(t) < rl.window {
			kept = append(kept, t)
		}
	}
	return kept
}

func (rl *RateLimiter) evictLoop() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()
	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key := range rl.seen {
			if kept := rl.prune(key, now); len(kept) == 0 {
				delete(rl.seen, key)
			} else {
				rl.seen[key] = kept
			}
		}
		rl.mu.Unlock()
	}
}

func RateLimitMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
