package middleware

import (
	"github.com/gin-gonic/gin"

	"video-catalog-service/pkg/logger"
)

// TraceIDHeader is the HTTP header carrying the trace id.
const TraceIDHeader = "X-Trace-ID"

// Trace stamps every request with a trace id, reusing the caller's when one
// is supplied.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if traceID == "" {
			traceID = logger.GenerateTraceID()
		}

		c.Writer.Header().Set(TraceIDHeader, traceID)
		c.Request = c.Request.WithContext(logger.WithTraceID(c.Request.Context(), traceID))

		c.Next()
	}
}
