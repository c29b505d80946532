package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/forgo/circle/api/internal/model"
)

// RateLimiter implements token bucket rate limiting per client
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     int           // Requests per window
	window   time.Duration // Time window
	burst    int           // Extra tokens on top of rate
	cleanup  time.Duration // Cleanup interval for idle buckets
	now      func() time.Time
	stopOnce sync.Once
	stopChan chan struct{}
}

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// RateLimitConfig holds rate limiter configuration
type RateLimitConfig struct {
	Rate    int           // Requests per window (default 100)
	Window  time.Duration // Time window (default 1 minute)
	Burst   int           // Max burst (default 20)
	Cleanup time.Duration // Cleanup interval (default 5 minutes)
}

// NewRateLimiter creates a new rate limiter and starts its cleanup loop
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Rate <= 0 {
		cfg.Rate = 100
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Burst < 0 {
		cfg.Burst = 0
	}
	if cfg.Cleanup <= 0 {
		cfg.Cleanup = 5 * time.Minute
	}

	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     cfg.Rate,
		window:   cfg.Window,
		burst:    cfg.Burst,
		cleanup:  cfg.Cleanup,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopChan) })
}

// Limit returns the configured requests per window
func (rl *RateLimiter) Limit() int {
	return rl.rate
}

func (rl *RateLimiter) capacity() int {
	return rl.rate + rl.burst
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupIdle()
		case <-rl.stopChan:
			return
		}
	}
}

// cleanupIdle drops buckets that would be full again anyway
func (rl *RateLimiter) cleanupIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.window * 2)
	for key, b := range rl.buckets {
		if b.lastRefill.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
}

// refill adds the tokens earned since the last refill
func (rl *RateLimiter) refill(b *bucket, now time.Time) {
	elapsed := now.Sub(b.lastRefill)
	if elapsed >= rl.window {
		b.tokens = rl.capacity()
		b.lastRefill = now
		return
	}

	earned := int(float64(rl.rate) * (float64(elapsed) / float64(rl.window)))
	if earned == 0 {
		return
	}
	b.tokens = min(b.tokens+earned, rl.capacity())
	b.lastRefill = now
}

// Allow takes a token for key if one is available
func (rl *RateLimiter) Allow(key string) (allowed bool, remaining int, resetTime time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.capacity(), lastRefill: now}
		rl.buckets[key] = b
	} else {
		rl.refill(b, now)
	}

	resetTime = b.lastRefill.Add(rl.window)
	if b.tokens == 0 {
		return false, 0, resetTime
	}
	b.tokens--
	return true, b.tokens, resetTime
}

// RateLimit returns a middleware that applies rate limiting per client.
// Requests for the exempt paths are never limited.
func RateLimit(limiter *RateLimiter, exempt ...string) Middleware {
	skip := make(map[string]bool, len(exempt))
	for _, p := range exempt {
		skip[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			allowed, remaining, resetTime := limiter.Allow(ClientKey(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

			if !allowed {
				retryAfter := max(int(time.Until(resetTime).Seconds()), 1)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

				model.NewRateLimitError(retryAfter).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
