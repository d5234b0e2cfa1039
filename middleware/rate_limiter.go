package middleware

import (
	"net"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter counts requests per client IP over a fixed window. Each IP
// gets its own window, started on its first request and reset lazily once
// it elapses, so a counter never carries over into the next window.
type RateLimiter struct {
	mu      sync.Mutex
	seen    map[string]*ipWindow
	limit   int
	window  time.Duration
	lastGC  time.Time
}

type ipWindow struct {
	count   int
	started time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		seen:   make(map[string]*ipWindow),
		limit:  limit,
		window: window,
		lastGC: time.Now(),
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
		if err != nil {
			ip = c.ClientIP()
		}

		rl.mu.Lock()

		now := time.Now()
		rl.sweep(now)

		w := rl.seen[ip]
		if w == nil || now.Sub(w.started) >= rl.window {
			w = &ipWindow{started: now}
			rl.seen[ip] = w
		}
		w.count++
		over := w.count > rl.limit
		retry := w.started.Add(rl.window).Sub(now)

		rl.mu.Unlock()

		if over {
			c.Header("Retry-After", retry.Round(time.Second).String())
			c.JSON(429, gin.H{
				"error":   "Too Many Requests",
				"message": "Rate limit exceeded. Please wait before making more requests.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// sweep drops expired windows so idle IPs do not accumulate. Caller holds mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastGC) < rl.window {
		return
	}
	for ip, w := range rl.seen {
		if now.Sub(w.started) >= rl.window {
			delete(rl.seen, ip)
		}
	}
	rl.lastGC = now
}

// Shared limiter instances. The strict limiter guards the mutating review
// and provisioning endpoints (suggestion review, batch approve, client
// create/delete, attachment upload, usage reset).
var (
	GlobalRateLimiter = NewRateLimiter(100, 1*time.Minute)
	StrictRateLimiter = NewRateLimiter(10, 1*time.Minute)
)
