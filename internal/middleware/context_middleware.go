package middleware

import (
	"go-hris-payroll/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const HeaderRequestID = "X-Request-ID"

// ContextLogger assigns a request id, carries it in the request context for
// contextutil.Logger and the outbox, and writes one access log line.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Header(HeaderRequestID, rid)
		c.Set("request_id", rid)

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)

		c.Request = c.Request.WithContext(contextutil.WithRequestID(c.Request.Context(), rid))

		c.Next()

		reqLogger.Info("request completed", zap.Int("status", c.Writer.Status()))
	}
}
