package middleware

import (
	"time"

	"travelnest/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger prints minimal request log including request_id when available.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("request_id", GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			utils.Logger().Error("http request", fields...)
		case status >= 400:
			utils.Logger().Warn("http request", fields...)
		default:
			utils.Logger().Info("http request", fields...)
		}
	}
}
