package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/minn-platform/backend/internal/domain/error"
)

func TestRateLimiter_Allow(t *testing.T) {
	current := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiterWithConfig(3, time.Minute)
	rl.now = func() time.Time { return current }

	for i := 0; i < 3; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("request above the limit allowed, want denied")
	}

	if !rl.allow("10.0.0.2") {
		t.Error("separate client denied, want allowed")
	}

	current = current.Add(time.Minute)
	if !rl.allow("10.0.0.1") {
		t.Error("client denied after window expiry, want allowed")
	}
}

func TestRateLimiter_PrunesExpiredWindows(t *testing.T) {
	current := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiterWithConfig(10, time.Minute)
	rl.now = func() time.Time { return current }

	rl.allow("10.0.0.1")
	current = current.Add(2 * time.Minute)

	// Reaching the admission threshold forces a sweep.
	rl.allowed = pruneEvery - 1
	rl.allow("10.0.0.2")

	rl.mu.Lock()
	_, stale := rl.windows["10.0.0.1"]
	total := len(rl.windows)
	rl.mu.Unlock()

	if stale {
		t.Error("expired window survived the sweep")
	}
	if total != 1 {
		t.Errorf("windows = %d, want 1", total)
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("E2E_MODE", "")

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/login", NewRateLimiterWithConfig(1, time.Minute).Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	request := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.RemoteAddr = "203.0.113.9:51000"
		engine.ServeHTTP(rec, req)
		return rec
	}

	if rec := request(); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want %d", rec.Code, http.StatusOK)
	}

	rec := request()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if !strings.Contains(rec.Body.String(), string(domainerror.ErrCodeRateLimited)) {
		t.Errorf("response body %q does not carry the rate limit code", rec.Body.String())
	}
}

func TestRateLimiter_SkippedInTestEnvironment(t *testing.T) {
	t.Setenv("ENV", "test")

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/login", NewRateLimiterWithConfig(1, time.Minute).Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.RemoteAddr = "203.0.113.9:51000"
		engine.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}
}
