package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/readsphere/readsphere-backend/internal/requestdata"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, reusing the caller's header when
// present, and echoes it back on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx := c.Request.Context()
		rd := requestdata.GetRequestData(ctx)
		if rd == nil {
			rd = &requestdata.RequestData{}
			ctx = requestdata.WithRequestData(ctx, rd)
			c.Request = c.Request.WithContext(ctx)
		}
		rd.RequestID = requestID
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}
