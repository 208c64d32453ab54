// Package middleware provides the gin middleware of the site server.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/lapisvisuals/lapis/ctxutil"
)

// TraceHeader carries the trace id in requests and responses.
const TraceHeader = "X-Trace-ID"

// Trace puts a trace id, the client IP and the user agent on the request
// context. An incoming X-Trace-ID is reused.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if id := c.GetHeader(TraceHeader); id != "" {
			ctx = ctxutil.SetTraceID(ctx, id)
		}
		ctx, traceID := ctxutil.EnsureTraceID(ctx)
		ctx = ctxutil.SetClientIP(ctx, c.ClientIP())
		ctx = ctxutil.SetUserAgent(ctx, c.Request.UserAgent())
		ctx = ctxutil.WithGinContext(ctx, c)

		c.Request = c.Request.WithContext(ctx)
		c.Header(TraceHeader, traceID)
		c.Next()
	}
}
