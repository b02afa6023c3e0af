package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/library/internal/logging"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 64

// RequestIDMiddleware reuses a sane incoming X-Request-ID or assigns a new
// UUID, and echoes it in the response.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		c.Set(logging.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
