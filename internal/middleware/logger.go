package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"talentnest/internal/logger"
)

const headerRequestID = "X-Request-ID"

// RequestID propagates the client's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(headerRequestID, id)
		c.Next()
	}
}

// ErrorLogger logs every request and recovers from panics.
func ErrorLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				logger.ErrorContext(c.Request.Context(), "panic recovered",
					append(requestAttrs(c, start), "error", err.Error(), "stack", string(debug.Stack()))...)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_ERROR",
						"message": "An internal error occurred",
					},
				})
				return
			}

			attrs := requestAttrs(c, start)
			switch {
			case len(c.Errors) > 0:
				logger.ErrorContext(c.Request.Context(), "request_error", append(attrs, "error", c.Errors.String())...)
			case c.Writer.Status() >= http.StatusInternalServerError:
				logger.ErrorContext(c.Request.Context(), "http_error", attrs...)
			default:
				logger.InfoContext(c.Request.Context(), "request", attrs...)
			}
		}()

		c.Next()
	}
}

func requestAttrs(c *gin.Context, start time.Time) []any {
	return []any{
		"status", c.Writer.Status(),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"client_ip", c.ClientIP(),
		"user_id", c.GetInt64(ctxUserID),
		"role", c.GetString(ctxRole),
		"request_id", c.GetString("request_id"),
		"latency", time.Since(start).String(),
	}
}
