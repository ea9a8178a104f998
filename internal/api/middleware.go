package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rongwang/txvault/internal/utils"
)

const requestIDHeader = "X-Request-ID"

// RequestID returns a Gin middleware tagging each request with an id.
// A client-supplied X-Request-ID is kept as is.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set("requestId", requestID)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

// RequestLogger returns a Gin middleware logging one line per request
func RequestLogger(logger *utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		line := "[%s] %s %s -> %d (%s)"
		args := []interface{}{c.GetString("requestId"), c.Request.Method, c.Request.URL.Path, status, time.Since(start)}

		if status >= 500 {
			logger.Error(line, args...)
			return
		}
		logger.Info(line, args...)
	}
}
