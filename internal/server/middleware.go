package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oshokin/spot-grabber/internal/logger"
)

// requestLogger logs every request at debug level and failed requests at warn level.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			start = time.Now()
			path  = c.Request.URL.Path
			query = c.Request.URL.RawQuery
		)

		c.Next()

		var (
			ctx        = c.Request.Context()
			statusCode = c.Writer.Status()
			kv         = []any{
				"method", c.Request.Method,
				"path", path,
				"query", query,
				"status", statusCode,
				"latency", time.Since(start),
				"client_ip", c.ClientIP(),
			}
		)

		if statusCode >= http.StatusInternalServerError {
			logger.WarnKV(ctx, "HTTP request failed", kv...)

			return
		}

		logger.DebugKV(ctx, "HTTP request", kv...)
	}
}

// recovery turns handler panics into 500 responses.
func recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.ErrorKV(c.Request.Context(), "Panic recovered",
					"error", err,
					"path", c.Request.URL.Path,
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()

		c.Next()
	}
}
