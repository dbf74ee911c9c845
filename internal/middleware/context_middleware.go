package middleware

import (
	"time"

	"go-calypso/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a request-scoped logger to the request context and
// writes one access log line per request. It must run after RequestID.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	access := logger.Named("http")

	return func(c *gin.Context) {
		start := time.Now()
		rid := contextutil.GetRequestID(c.Request.Context())

		reqLogger := logger.With(zap.String("request_id", rid))
		c.Request = c.Request.WithContext(contextutil.WithLogger(c.Request.Context(), reqLogger))

		c.Next()

		fields := []zap.Field{
			zap.String("request_id", rid),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if uid := c.GetString(KeyUserID); uid != "" {
			fields = append(fields, zap.String("user_id", uid))
		}

		switch {
		case c.Writer.Status() >= 500:
			access.Error("request completed", fields...)
		case c.Writer.Status() >= 400:
			access.Warn("request completed", fields...)
		default:
			access.Info("request completed", fields...)
		}
	}
}
