package middleware

import (
	"net/http"
	"sync"
	"time"

	"go-calypso/internal/shared/apperror"
	"go-calypso/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type keyedLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyRateLimiter keeps one token bucket per key (client IP or user id).
type KeyRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*keyedLimiter
	r        rate.Limit
	b        int
	ttl      time.Duration
}

func NewKeyRateLimiter(r rate.Limit, b int) *KeyRateLimiter {
	return &KeyRateLimiter{
		limiters: make(map[string]*keyedLimiter),
		r:        r,
		b:        b,
		ttl:      10 * time.Minute,
	}
}

func (k *KeyRateLimiter) GetLimiter(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := time.Now()
	entry, ok := k.limiters[key]
	if !ok {
		entry = &keyedLimiter{limiter: rate.NewLimiter(k.r, k.b)}
		k.limiters[key] = entry
		k.evictIdle(now)
	}
	entry.lastSeen = now
	return entry.limiter
}

// must hold k.mu
func (k *KeyRateLimiter) evictIdle(now time.Time) {
	for key, e := range k.limiters {
		if now.Sub(e.lastSeen) > k.ttl {
			delete(k.limiters, key)
		}
	}
}

func tooManyRequests(c *gin.Context, msg string) {
	response.Error(c, http.StatusTooManyRequests, apperror.CodeTooManyRequest, msg, nil)
	c.Abort()
}

// RateLimitByIP: r requests per second, burst b.
func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			tooManyRequests(c, "Too many requests from this IP")
			return
		}
		c.Next()
	}
}

// RateLimitByUser: r requests per second, burst b. Anonymous calls pass through.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyRateLimiter(r, b)
	return func(c *gin.Context) {
		userID := c.GetString(KeyUserID)
		if userID == "" {
			c.Next()
			return
		}
		if !limiter.GetLimiter(userID).Allow() {
			tooManyRequests(c, "Too many requests from this user")
			return
		}
		c.Next()
	}
}
