package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hris-payroll/internal/middleware"
	"go-hris-payroll/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestKeyedRateLimiter_SeparateBuckets(t *testing.T) {
	limiter := middleware.NewKeyedRateLimiter(rate.Limit(0.001), 1)

	assert.True(t, limiter.Allow("a"))
	assert.False(t, limiter.Allow("a"))
	assert.True(t, limiter.Allow("b"))
}

func TestRateLimitByEmployee(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/attendance/check-in",
		func(c *gin.Context) {
			if emp := c.GetHeader("X-Test-Employee"); emp != "" {
				middleware.SetIdentity(c, tenant.Identity{CompanyID: "c1", EmployeeID: emp, Role: tenant.RoleEmployee})
			}
			c.Next()
		},
		middleware.RateLimitByEmployee(rate.Limit(0.001), 1),
		func(c *gin.Context) { c.Status(http.StatusCreated) },
	)

	send := func(employee string) int {
		req := httptest.NewRequest(http.MethodPost, "/attendance/check-in", nil)
		if employee != "" {
			req.Header.Set("X-Test-Employee", employee)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, send("e1"))
	assert.Equal(t, http.StatusTooManyRequests, send("e1"))
	assert.Equal(t, http.StatusCreated, send("e2"))
	// anonymous requests are left to AuthMiddleware
	assert.Equal(t, http.StatusCreated, send(""))
	assert.Equal(t, http.StatusCreated, send(""))
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", middleware.RateLimitByIP(rate.Limit(0.001), 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
