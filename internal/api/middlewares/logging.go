package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"newsblog/pkg/logger"
)

// ContextRequestID is the gin context key holding the request id
const ContextRequestID = "request_id"

// RequestLogging assigns a request id and logs every completed request
func RequestLogging(log *logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("http")

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestID, requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		logData := map[string]interface{}{
			"request_id":  requestID,
			"method":      c.Request.Method,
			"path":        path,
			"query":       raw,
			"status_code": status,
			"latency_ms":  latency.Milliseconds(),
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if userID, _, ok := CurrentUser(c); ok {
			logData["user_id"] = userID
		}

		entry := log.WithFields(logData)
		switch {
		case status >= 500:
			entry.Error("HTTP request completed with server error")
		case status >= 400:
			entry.Warning("HTTP request completed with client error")
		default:
			entry.Info("HTTP request completed")
		}
	}
}
