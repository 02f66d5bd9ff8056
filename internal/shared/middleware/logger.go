package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	sharedContext "github.com/library-circulation/go-api-server/internal/shared/context"
	"github.com/library-circulation/go-api-server/internal/shared/logger"
)

// LoggerMiddleware binds a request scoped slog logger to the request context
// and writes one access line per request once the handler chain returns.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		reqLogger := slog.Default().With("request_id", GetRequestID(c))
		c.Request = c.Request.WithContext(logger.WithLogger(c.Request.Context(), reqLogger))

		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start).String(),
			"ip", c.ClientIP(),
			"userAgent", c.Request.UserAgent(),
		}
		if query != "" {
			fields = append(fields, "query", query)
		}
		if memberID := c.GetString(sharedContext.MemberIDKey); memberID != "" {
			fields = append(fields, "member_id", memberID)
		}
		if outcome := c.GetString(sharedContext.OutcomeKey); outcome != "" {
			fields = append(fields, "outcome", outcome)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "error", c.Errors.String())
		}

		const msg = "Request processed"
		switch {
		case status >= 500:
			reqLogger.Error(msg, fields...)
		case status >= 400:
			reqLogger.Warn(msg, fields...)
		default:
			reqLogger.Info(msg, fields...)
		}
	}
}
