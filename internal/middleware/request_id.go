package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/krispatl/mootie/internal/pkg/correlation"
)

// RequestID accepts a caller-supplied X-Request-Id or mints one, echoes
// it on the response, and threads it through the request context so
// every provider call carries the same correlation id.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-Id", reqID)
		c.Set("request_id", reqID)
		c.Request = c.Request.WithContext(correlation.WithID(c.Request.Context(), reqID))
		c.Next()
	}
}
