package middleware

import (
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/minn-platform/backend/internal/domain/error"
	"github.com/minn-platform/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultLoginAttempts guards credential endpoints.
	defaultLoginAttempts = 5
	defaultWindow        = time.Minute

	// pruneEvery is how many admissions pass between sweeps of stale
	// windows.
	pruneEvery = 256
)

// window counts requests from one client inside the current fixed window.
type window struct {
	started time.Time
	count   int
}

// RateLimiter applies a fixed-window request limit per client IP. State
// lives in process memory, which is enough for a single API instance;
// limits that must span instances belong in Redis like the login guard.
type RateLimiter struct {
	max  int
	span time.Duration
	now  func() time.Time

	mu      sync.Mutex
	windows map[string]*window
	allowed int
}

// NewRateLimiter creates a limiter tuned for login endpoints.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(defaultLoginAttempts, defaultWindow)
}

// NewRateLimiterWithConfig creates a limiter allowing maxAttempts requests
// per client within each windowSpan.
func NewRateLimiterWithConfig(maxAttempts int, windowSpan time.Duration) *RateLimiter {
	return &RateLimiter{
		max:     maxAttempts,
		span:    windowSpan,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

// Middleware rejects clients above the limit with 429. Integration test
// runs disable limiting so scenario setup can call the API repeatedly.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if os.Getenv("E2E_MODE") == "true" || os.Getenv("ENV") == "test" {
			c.Next()
			return
		}

		key := c.ClientIP()
		if key == "" {
			key = c.Request.RemoteAddr
		}

		if !rl.allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	w := rl.windows[key]
	if w == nil || now.Sub(w.started) >= rl.span {
		rl.windows[key] = &window{started: now, count: 1}
		rl.admitted()
		return true
	}

	if w.count >= rl.max {
		return false
	}
	w.count++
	rl.admitted()
	return true
}

// admitted counts admissions and occasionally drops expired windows so the
// map does not keep one entry per client forever. Caller holds the lock.
func (rl *RateLimiter) admitted() {
	rl.allowed++
	if rl.allowed < pruneEvery {
		return
	}
	rl.allowed = 0

	cutoff := rl.now().Add(-rl.span)
	for key, w := range rl.windows {
		if w.started.Before(cutoff) {
			delete(rl.windows, key)
		}
	}
}
