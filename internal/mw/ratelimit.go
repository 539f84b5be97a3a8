package mw

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ClientLimiter hands out one token bucket per client IP.
type ClientLimiter struct {
	mu      sync.Mutex
	clients map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

// NewClientLimiter creates a ClientLimiter with the given refill rate
// and burst size.
func NewClientLimiter(limit rate.Limit, burst int) *ClientLimiter {
	return &ClientLimiter{
		clients: make(map[string]*rate.Limiter),
		limit:   limit,
		burst:   burst,
	}
}

// Allow reports whether the client may proceed, creating its bucket on
// first sight.
func (l *ClientLimiter) Allow(ip string) bool {
	l.mu.Lock()
	limiter, ok := l.clients[ip]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.clients[ip] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}

// RateLimit is a middleware for IP-based rate limiting. Clients over
// their limit receive a 429 response.
func RateLimit(limit rate.Limit, burst int) gin.HandlerFunc {
	clients := NewClientLimiter(limit, burst)
	return func(c *gin.Context) {
		if !clients.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
