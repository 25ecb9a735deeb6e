package middleware

import (
	"time"

	"github.com/docsession/docsession/pkg/logger"
	"github.com/gin-gonic/gin"
)

// RequestLogger writes one structured access-log line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if uid, ok := CurrentUserID(c); ok {
			fields = append(fields, "user_id", uid)
		}
		log := logger.With(fields...)
		switch {
		case c.Writer.Status() >= 500:
			log.Error("request failed")
		case len(c.Errors) > 0:
			log.Warnw("request completed with errors", "errors", c.Errors.String())
		default:
			log.Info("request")
		}
	}
}
