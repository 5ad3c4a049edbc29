package middleware

import (
	"net/http"
	"sync"

	"go-hris-payroll/internal/shared/apperror"
	"go-hris-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// KeyedRateLimiter keeps one token bucket per key.
type KeyedRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	r        rate.Limit
	b        int
}

// NewKeyedRateLimiter allows r requests per second per key with bursts of b.
func NewKeyedRateLimiter(r rate.Limit, b int) *KeyedRateLimiter {
	return &KeyedRateLimiter{limiters: make(map[string]*rate.Limiter), r: r, b: b}
}

func (k *KeyedRateLimiter) Allow(key string) bool {
	k.mu.Lock()
	limiter, ok := k.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(k.r, k.b)
		k.limiters[key] = limiter
	}
	k.mu.Unlock()

	return limiter.Allow()
}

func tooManyRequests(c *gin.Context, scope string) {
	response.Error(c, http.StatusTooManyRequests, apperror.CodeRateLimited,
		"Too many requests, slow down", gin.H{"scope": scope})
	c.Abort()
}

func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			tooManyRequests(c, "ip")
			return
		}
		c.Next()
	}
}

// RateLimitByEmployee limits per authenticated employee of a tenant and must
// run after AuthMiddleware. Unauthenticated requests pass through untouched.
func RateLimitByEmployee(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		employeeID := c.GetString(KeyEmployeeID)
		if employeeID == "" {
			c.Next()
			return
		}
		if !limiter.Allow(c.GetString(KeyCompanyID) + ":" + employeeID) {
			tooManyRequests(c, "employee")
			return
		}
		c.Next()
	}
}
