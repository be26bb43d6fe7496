package httpmiddleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var rateLimited = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "sangha_http_rate_limited_total",
	Help: "Requests rejected by the per-client rate limiter.",
})

// idleAfter is how long a client bucket may sit full before it is dropped.
const idleAfter = 10 * time.Minute

// RateLimiter is a per-client token bucket held in memory.
// Each API instance limits independently.
type RateLimiter struct {
	burst     float64
	perSecond float64
	skip      []string

	mu        sync.Mutex
	clients   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	tokens float64
	seen   time.Time
}

// NewRateLimiter allows perMinute requests per client with bursts of up to burst.
// Paths starting with any skip prefix are never limited.
func NewRateLimiter(perMinute, burst int, skip ...string) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	if burst <= 0 {
		burst = perMinute
	}
	return &RateLimiter{
		burst:     float64(burst),
		perSecond: float64(perMinute) / 60,
		skip:      skip,
		clients:   make(map[string]*bucket),
		now:       time.Now,
	}
}

// Middleware rejects clients that ran out of tokens with 429.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, prefix := range l.skip {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				c.Next()
				return
			}
		}
		key := c.ClientIP()
		if key == "" {
			key = "unknown"
		}
		if !l.allow(key) {
			rateLimited.Inc()
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func (l *RateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.clients[key]
	if !ok {
		l.clients[key] = &bucket{tokens: l.burst - 1, seen: now}
		return true
	}
	b.tokens += now.Sub(b.seen).Seconds() * l.perSecond
	if b.tokens > l.burst {
		b.tokens = l.burst
	}
	b.seen = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// sweep drops idle clients at most once per idleAfter.
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < idleAfter {
		return
	}
	l.lastSweep = now
	for key, b := range l.clients {
		if now.Sub(b.seen) >= idleAfter {
			delete(l.clients, key)
		}
	}
}
