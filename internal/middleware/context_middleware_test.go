package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hris-payroll/internal/middleware"
	"go-hris-payroll/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	var seen string
	r := gin.New()
	r.Use(middleware.ContextLogger(zap.New(core)))
	r.GET("/payroll/history", func(c *gin.Context) {
		seen = contextutil.GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	t.Run("keeps caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/payroll/history", nil)
		req.Header.Set(middleware.HeaderRequestID, "rid-abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "rid-abc", seen)
		assert.Equal(t, "rid-abc", w.Header().Get(middleware.HeaderRequestID))
	})

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payroll/history", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get(middleware.HeaderRequestID))
	})

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "rid-abc", entries[0].ContextMap()["request_id"])
	assert.EqualValues(t, http.StatusOK, entries[0].ContextMap()["status"])
}
