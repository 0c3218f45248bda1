package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the context and header key for the request ID
const RequestIDKey = "X-Request-ID"

// RequestID assigns each request an ID, honoring one supplied by the
// caller, and echoes it on the response
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDKey)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDKey, id)
		c.Next()
	}
}

// GetRequestID returns the request ID assigned by RequestID, empty when
// the middleware did not run
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
