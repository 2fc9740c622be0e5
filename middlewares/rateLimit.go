package middlewares

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Limiters hands out one token bucket per client key
type Limiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	r        rate.Limit
	b        int
}

func NewLimiters(r rate.Limit, b int) *Limiters {
	return &Limiters{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		b:        b,
	}
}

func (l *Limiters) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.limiters[key] = limiter
	}
	return limiter
}

// RateLimitMiddleware rejects requests over r per second (burst b) per key.
// A non-positive rate disables limiting.
func RateLimitMiddleware(r rate.Limit, b int, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	if r <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if b < 1 {
		b = 1
	}

	limiters := NewLimiters(r, b)
	return func(c *gin.Context) {
		if !limiters.get(keyFunc(c)).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please slow down :("})
			return
		}

		c.Next()
	}
}

// ClientIPKey keys limiters by the caller's address
func ClientIPKey(c *gin.Context) string {
	return c.ClientIP()
}
