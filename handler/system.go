package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lapisvisuals/lapis/net/resp"
	"github.com/lapisvisuals/lapis/version"
)

// Health reports the database state plus stream and email queue counters.
// A failed database check answers 503.
func (h *Handler) Health(c *gin.Context) {
	status := map[string]any{
		"status":  "healthy",
		"version": version.GetVersionInfo().Version,
	}
	if h.streams != nil {
		status["streams"] = h.streams.GetMetrics()
	}
	if q := h.svc.Mailer.QueueMetrics(); q != nil {
		status["email_queue"] = q
	}
	if h.health != nil {
		db := h.health.Health(c.Request.Context())
		status["database"] = db
		if db["status"] != "healthy" {
			status["status"] = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
	}
	resp.Success(c.Writer, status)
}

func (h *Handler) Version(c *gin.Context) {
	resp.Success(c.Writer, version.GetVersionInfo())
}
