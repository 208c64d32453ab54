package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lapisvisuals/lapis/content"
	"github.com/lapisvisuals/lapis/net/resp"
)

// Awards returns one carousel page.
//
//	GET /api/awards?width=1440&page=2&variant=homepage&action=next
func (h *Handler) Awards(c *gin.Context) {
	width := h.svc.Showcase.ResolveWidth(queryInt(c, "width", "w"), c.Request.UserAgent())
	view := h.svc.Showcase.View(content.ParseVariant(c.Query("variant")), width, queryInt(c, "page"), c.Query("action"))
	resp.Success(c.Writer, view)
}

func (h *Handler) VideoSections(c *gin.Context) {
	resp.Success(c.Writer, h.svc.Showcase.Catalog().VideoSections)
}

func (h *Handler) Services(c *gin.Context) {
	resp.Success(c.Writer, h.svc.Showcase.Catalog().Services)
}

func (h *Handler) Footer(c *gin.Context) {
	resp.Success(c.Writer, h.svc.Showcase.Catalog().Footer)
}

// Loading returns the splash text with its per-character schedule in ms.
func (h *Handler) Loading(c *gin.Context) {
	l := h.svc.Showcase.Catalog().Loading
	offsets := content.FixedSchedule(l.Text, l.CharDelay)
	ms := make([]int64, len(offsets))
	for i, d := range offsets {
		ms[i] = d.Milliseconds()
	}
	resp.Success(c.Writer, map[string]any{
		"text":      l.Text,
		"charDelay": l.CharDelay.Milliseconds(),
		"schedule":  ms,
	})
}

func isAPI(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

func (h *Handler) notFoundJSON(c *gin.Context) {
	resp.Fail(c.Writer, resp.NotFound(http.StatusText(http.StatusNotFound)))
}
