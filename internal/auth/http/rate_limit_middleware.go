package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTTL         = time.Hour
)

// IPRateLimiter enforces per-client-IP rate limiting on public viewer endpoints.
// Stop must be called to release the cleanup goroutine.
type IPRateLimiter struct {
	limiters sync.Map // map[string]*rateLimiterEntry
	rps      float64
	burst    int
	logger   *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// rateLimiterEntry holds a rate limiter and last access time for cleanup.
type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

// NewIPRateLimiter creates a limiter allowing rps requests per second with the given burst
// for each client IP, and starts its cleanup goroutine.
func NewIPRateLimiter(rps float64, burst int, logger *slog.Logger) *IPRateLimiter {
	return newIPRateLimiter(rps, burst, logger, limiterCleanupInterval, limiterIdleTTL)
}

func newIPRateLimiter(
	rps float64,
	burst int,
	logger *slog.Logger,
	interval, idleTTL time.Duration,
) *IPRateLimiter {
	ctx, cancel := context.WithCancel(context.Background())
	l := &IPRateLimiter{
		rps:    rps,
		burst:  burst,
		logger: logger,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go l.cleanupStale(ctx, interval, idleTTL)
	return l
}

// Middleware returns the gin middleware.
//
// Returns:
//   - 429 Too Many Requests: Rate limit exceeded (includes Retry-After header)
//   - Continues: Request allowed within rate limit
func (l *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := l.getLimiter(clientIP)

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(reservation.Delay().Seconds())
			reservation.Cancel()
			if retryAfter < 1 {
				retryAfter = 1
			}

			l.logger.Debug("rate limit exceeded",
				slog.String("client_ip", clientIP),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many requests. Please retry after the specified delay.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// Stop terminates the cleanup goroutine and waits for it to exit.
func (l *IPRateLimiter) Stop() {
	l.cancel()
	<-l.done
}

// getLimiter retrieves or creates the rate limiter for a client IP.
func (l *IPRateLimiter) getLimiter(key string) *rate.Limiter {
	now := time.Now()
	entry := &rateLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(l.rps), l.burst),
		lastAccess: now,
	}

	val, loaded := l.limiters.LoadOrStore(key, entry)
	if loaded {
		entry = val.(*rateLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = now
		entry.mu.Unlock()
	}
	return entry.limiter
}

// cleanupStale removes limiters idle for longer than idleTTL.
func (l *IPRateLimiter) cleanupStale(ctx context.Context, interval, idleTTL time.Duration) {
	defer close(l.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.evictIdle(time.Now().Add(-idleTTL))
		}
	}
}

func (l *IPRateLimiter) evictIdle(threshold time.Time) {
	l.limiters.Range(func(key, value any) bool {
		entry := value.(*rateLimiterEntry)
		entry.mu.Lock()
		stale := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if stale {
			l.limiters.Delete(key)
		}
		return true
	})
}
