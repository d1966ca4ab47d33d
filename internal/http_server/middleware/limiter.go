// Package middleware
package middleware

import (
	"context"
	. "github.com/half-nothing/smallcraft-designer/internal/interfaces/service"
	"github.com/labstack/echo/v4"
	"sync"
	"time"
)

// SlidingWindowLimiter 滑动窗口限流器, 按key记录窗口内的请求时间
type SlidingWindowLimiter struct {
	windowSize     time.Duration
	maxRequests    int
	requestRecords map[string][]time.Time
	mu             sync.Mutex
	now            func() time.Time
}

func NewSlidingWindowLimiter(windowSize time.Duration, maxRequests int) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		windowSize:     windowSize,
		maxRequests:    maxRequests,
		requestRecords: make(map[string][]time.Time),
		now:            time.Now,
	}
}

// Allow 检查是否允许请求, maxRequests不大于0时不限流
func (l *SlidingWindowLimiter) Allow(key string) bool {
	if l.maxRequests <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-l.windowSize)
	records := l.requestRecords[key]
	expired := 0
	for expired < len(records) && !records[expired].After(windowStart) {
		expired++
	}
	records = records[expired:]

	if len(records) >= l.maxRequests {
		l.requestRecords[key] = records
		return false
	}

	l.requestRecords[key] = append(records, now)
	return true
}

// Tracked 当前记录的key数量
func (l *SlidingWindowLimiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.requestRecords)
}

// StartCleanup 定期清理闲置的key, ctx取消后停止
func (l *SlidingWindowLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.cleanup()
			}
		}
	}()
}

func (l *SlidingWindowLimiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	threshold := l.now().Add(-2 * l.windowSize)
	for key, records := range l.requestRecords {
		if len(records) == 0 || records[len(records)-1].Before(threshold) {
			delete(l.requestRecords, key)
		}
	}
}

func RateLimitMiddleware(limiter *SlidingWindowLimiter, keyFunc func(c echo.Context) string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(keyFunc(c)) {
				return NewErrorResponse(c, &ErrRateLimitExceeded)
			}
			return next(c)
		}
	}
}

func IPKeyFunc(c echo.Context) string {
	return c.RealIP()
}

// CombinedKeyFunc 组合IP和路由生成键
func CombinedKeyFunc(c echo.Context) string {
	return c.RealIP() + "|" + c.Path()
}
