package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const clientIdleTTL = 3 * time.Minute

// RateLimiter keeps a token bucket per client IP. Buckets for IPs that
// have gone quiet are swept out periodically so the map stays bounded.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientBucket
	limit   rate.Limit
	burst   int
	ttl     time.Duration
}

type clientBucket struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(rps float64, burst int, ttl time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientBucket),
		limit:   rate.Limit(rps),
		burst:   burst,
		ttl:     ttl,
	}
	go rl.sweep()
	return rl
}

func (rl *RateLimiter) sweep() {
	for range time.Tick(time.Minute) {
		rl.mu.Lock()
		now := time.Now()
		for ip, cb := range rl.clients {
			if now.Sub(cb.lastSeen) > rl.ttl {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// Allow reports whether a request from ip fits in its bucket right now.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	cb, ok := rl.clients[ip]
	if !ok {
		cb = &clientBucket{bucket: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = cb
	}
	cb.lastSeen = time.Now()
	rl.mu.Unlock()

	return cb.bucket.Allow()
}

func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	limiter := NewRateLimiter(rps, burst, clientIdleTTL)

	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, slow down",
			})
			return
		}
		c.Next()
	}
}
