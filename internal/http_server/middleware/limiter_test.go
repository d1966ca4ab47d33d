// Package middleware
package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time {
	return c.current
}

func (c *fakeClock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestLimiter(window time.Duration, max int) (*SlidingWindowLimiter, *fakeClock) {
	clock := &fakeClock{current: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	limiter := NewSlidingWindowLimiter(window, max)
	limiter.now = clock.now
	return limiter, clock
}

func TestSlidingWindowLimiter(t *testing.T) {
	limiter, clock := newTestLimiter(time.Minute, 2)

	assert.True(t, limiter.Allow("a"))
	clock.advance(10 * time.Second)
	assert.True(t, limiter.Allow("a"))
	assert.False(t, limiter.Allow("a"))
	assert.True(t, limiter.Allow("b"))

	clock.advance(50 * time.Second)
	assert.True(t, limiter.Allow("a"))
	assert.False(t, limiter.Allow("a"))

	clock.advance(10 * time.Second)
	assert.True(t, limiter.Allow("a"))
}

func TestSlidingWindowLimiterDisabled(t *testing.T) {
	limiter, _ := newTestLimiter(time.Minute, 0)
	for i := 0; i < 100; i++ {
		require.True(t, limiter.Allow("a"))
	}
	assert.Zero(t, limiter.Tracked())
}

func TestSlidingWindowLimiterCleanup(t *testing.T) {
	limiter, clock := newTestLimiter(time.Minute, 5)
	limiter.Allow("old")
	clock.advance(90 * time.Second)
	limiter.Allow("fresh")
	clock.advance(40 * time.Second)

	limiter.cleanup()
	assert.Equal(t, 1, limiter.Tracked())
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter, _ := newTestLimiter(time.Minute, 1)
	e := echo.New()
	handler := RateLimitMiddleware(limiter, IPKeyFunc)(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	serve := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/designs", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		rec := httptest.NewRecorder()
		require.NoError(t, handler(e.NewContext(req, rec)))
		return rec
	}

	assert.Equal(t, http.StatusNoContent, serve().Code)
	rec := serve()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"RATE_LIMIT_EXCEEDED"`)
}
