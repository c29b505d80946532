package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLimiter returns a limiter with a controllable clock
func newTestLimiter(t *testing.T, cfg RateLimitConfig) (*RateLimiter, *time.Time) {
	t.Helper()

	rl := NewRateLimiter(cfg)
	t.Cleanup(rl.Stop)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

// ============================================================================
// Allow Tests
// ============================================================================

func TestNewRateLimiter_Defaults(t *testing.T) {
	t.Parallel()

	rl, _ := newTestLimiter(t, RateLimitConfig{})
	assert.Equal(t, 100, rl.Limit())
	assert.Equal(t, time.Minute, rl.window)
	assert.Equal(t, 0, rl.burst)
	assert.Equal(t, 5*time.Minute, rl.cleanup)
}

func TestAllow_ExhaustsRatePlusBurst(t *testing.T) {
	t.Parallel()

	rl, _ := newTestLimiter(t, RateLimitConfig{Rate: 3, Burst: 2, Window: time.Minute})

	for i := 0; i < 5; i++ {
		allowed, remaining, _ := rl.Allow("client")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 4-i, remaining)
	}

	allowed, remaining, _ := rl.Allow("client")
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)

	allowed, _, _ = rl.Allow("other")
	assert.True(t, allowed, "buckets are per key")
}

func TestAllow_RefillsOverTime(t *testing.T) {
	t.Parallel()

	rl, now := newTestLimiter(t, RateLimitConfig{Rate: 4, Window: time.Minute})
	for i := 0; i < 4; i++ {
		rl.Allow("client")
	}
	allowed, _, _ := rl.Allow("client")
	require.False(t, allowed)

	*now = now.Add(30 * time.Second)
	allowed, remaining, _ := rl.Allow("client")
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)

	*now = now.Add(2 * time.Minute)
	_, remaining, _ = rl.Allow("client")
	assert.Equal(t, 3, remaining)
}

func TestAllow_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	rl, _ := newTestLimiter(t, RateLimitConfig{Rate: 50, Window: time.Hour})

	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _, _ := rl.Allow("client"); ok {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, granted)
}

func TestCleanupIdle_RemovesOldBuckets(t *testing.T) {
	t.Parallel()

	rl, now := newTestLimiter(t, RateLimitConfig{Rate: 5, Window: time.Minute})
	rl.Allow("old")
	*now = now.Add(3 * time.Minute)
	rl.Allow("fresh")

	rl.cleanupIdle()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.buckets, "old")
	assert.Contains(t, rl.buckets, "fresh")
}

func TestStop_IsIdempotent(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{})
	rl.Stop()
	rl.Stop()
}

// ============================================================================
// Middleware Tests
// ============================================================================

func TestRateLimit_DeniesByClientAddress(t *testing.T) {
	t.Parallel()

	rl, _ := newTestLimiter(t, RateLimitConfig{Rate: 1, Window: time.Minute})
	handler := RateLimit(rl)(okHandler("ok"))

	first := httptest.NewRequest(http.MethodGet, "/users", nil)
	first.RemoteAddr = "192.0.2.7:1000"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, first)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))

	// Same host, different source port
	second := httptest.NewRequest(http.MethodGet, "/users", nil)
	second.RemoteAddr = "192.0.2.7:2000"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, second)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
}

func TestRateLimit_ExemptPathsBypass(t *testing.T) {
	t.Parallel()

	rl, _ := newTestLimiter(t, RateLimitConfig{Rate: 1, Window: time.Minute})
	handler := RateLimit(rl, "/health")(okHandler("ok"))

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Header().Get("X-RateLimit-Limit"))
	}
}
