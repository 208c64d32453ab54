package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/lapisvisuals/lapis/logging/logger"
	"github.com/lapisvisuals/lapis/net/resp"
	"github.com/sirupsen/logrus"
)

// Recovery turns a panic into a 500, logs it with the stack and reports it
// to Sentry when a client is configured.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			// the client went away; nothing to answer
			if r == http.ErrAbortHandler {
				panic(r)
			}

			ctx := c.Request.Context()
			if hub := sentry.CurrentHub(); hub.Client() != nil {
				hub = hub.Clone()
				hub.Scope().SetRequest(c.Request)
				hub.RecoverWithContext(ctx, r)
			}
			log.WithFieldsCtx(ctx, logrus.Fields{
				"panic": fmt.Sprint(r),
				"stack": string(debug.Stack()),
			}).Error("panic recovered")

			if !c.Writer.Written() {
				resp.Fail(c.Writer, resp.InternalServer("Internal server error"))
			}
			c.Abort()
		}()
		c.Next()
	}
}
