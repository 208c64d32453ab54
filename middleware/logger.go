package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lapisvisuals/lapis/ctxutil"
	"github.com/lapisvisuals/lapis/logging/logger"
	"github.com/sirupsen/logrus"
)

// AccessLog logs one line per request once it completes.
func AccessLog(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		entry := log.WithFieldsCtx(ctx, logrus.Fields{
			"method":   method,
			"path":     path,
			"status":   status,
			"duration": time.Since(start).String(),
			"ip":       ctxutil.GetClientIP(ctx),
			"ua":       ctxutil.GetUserAgent(ctx),
		})
		if admin := ctxutil.GetAdminUsername(ctx); admin != "" {
			entry = entry.WithField("admin", admin)
		}
		switch {
		case status >= 500:
			entry.Error("HTTP request")
		case status >= 400:
			entry.Warn("HTTP request")
		default:
			entry.Info("HTTP request")
		}
	}
}
