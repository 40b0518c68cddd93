package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestLogger logs one line per request and exposes a request-scoped logger
// under the "logger" context key.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLogger := base.With(zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
		c.Set("logger", reqLogger)

		c.Next()

		status := c.Writer.Status()
		level := zapcore.InfoLevel
		switch {
		case status >= 500:
			level = zapcore.ErrorLevel
		case status >= 400:
			level = zapcore.WarnLevel
		}
		fields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", getClientIP(c)),
		}
		if id, ok := CurrentIdentity(c); ok {
			fields = append(fields, zap.String("userId", id.UserID))
		}
		if ce := reqLogger.Check(level, "request"); ce != nil {
			ce.Write(fields...)
		}
	}
}
