// Package handler exposes the site's pages and JSON API over gin.
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lapisvisuals/lapis/concurrency"
	"github.com/lapisvisuals/lapis/config"
	"github.com/lapisvisuals/lapis/logging/logger"
	"github.com/lapisvisuals/lapis/middleware"
	"github.com/lapisvisuals/lapis/net/cookie"
	"github.com/lapisvisuals/lapis/net/resp"
	"github.com/lapisvisuals/lapis/service"
)

// HealthChecker reports the state of a dependency.
type HealthChecker interface {
	Health(ctx context.Context) map[string]any
}

// Handler holds the HTTP handlers.
type Handler struct {
	svc     *service.Service
	cfg     *config.Config
	health  HealthChecker
	streams *concurrency.Manager
	open    *streamSet
	cookie  cookie.Options
	log     *logger.Logger
}

// New creates the handlers. streams caps concurrent awards streams.
func New(svc *service.Service, cfg *config.Config, health HealthChecker, streams *concurrency.Manager, log *logger.Logger) *Handler {
	opts := cookie.Options{}
	if cfg.Auth != nil && cfg.Auth.Cookie != nil {
		opts.Name = cfg.Auth.Cookie.Name
		opts.Secure = cfg.Auth.Cookie.Secure
	}
	if cfg.Server != nil {
		opts.Domain = cfg.Server.Domain
	}
	return &Handler{
		svc:     svc,
		cfg:     cfg,
		health:  health,
		streams: streams,
		open:    newStreamSet(),
		cookie:  opts,
		log:     log,
	}
}

// RegisterRoutes mounts every route on r.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(middleware.Session(h.svc.Auth, h.cookie))

	r.GET("/", h.HomePage)
	r.GET("/awards", h.AwardsPage)
	r.GET("/services", h.ServicesPage)
	r.GET("/contact", h.ContactPage)
	r.GET("/login", h.LoginPage)

	admin := r.Group("/admin", middleware.RequireAdminPage())
	{
		admin.GET("", func(c *gin.Context) { c.Redirect(http.StatusFound, "/admin/dashboard") })
		admin.GET("/dashboard", h.DashboardPage)
		admin.GET("/email-blast", h.EmailBlastPage)
	}

	api := r.Group("/api")
	{
		api.GET("/awards", h.Awards)
		api.GET("/awards/stream", h.AwardsStream)
		api.POST("/awards/stream/:id/resize", h.ResizeStream)
		api.GET("/content/video-sections", h.VideoSections)
		api.GET("/content/services", h.Services)
		api.GET("/content/footer", h.Footer)
		api.GET("/content/loading", h.Loading)

		api.POST("/contact", h.SubmitContact)
		api.POST("/auth/login", h.Login)
		api.POST("/auth/logout", h.Logout)
		api.GET("/auth/me", middleware.RequireAdmin(), h.Me)
	}

	adminAPI := r.Group("/api/admin", middleware.RequireAdmin())
	{
		adminAPI.GET("/companies", h.ListCompanies)
		adminAPI.POST("/companies", h.CreateCompany)
		adminAPI.GET("/contacts", h.ListContacts)
		adminAPI.GET("/stats", h.EmailStats)
	}

	emailAPI := r.Group("/api/email", middleware.RequireAdmin())
	{
		emailAPI.POST("/send", h.SendEmail)
		emailAPI.POST("/preview", h.PreviewEmail)
		emailAPI.POST("/blast", h.BlastEmail)
	}

	r.GET("/health", h.Health)
	r.GET("/version", h.Version)
	r.NoRoute(h.NotFound)
}

// bind decodes the request body by content type.
func bind(c *gin.Context, obj any) bool {
	if err := c.ShouldBind(obj); err != nil {
		resp.Fail(c.Writer, resp.BadRequest("Invalid request body"))
		return false
	}
	return true
}

// queryInt reads the first present integer query parameter of keys.
func queryInt(c *gin.Context, keys ...string) int {
	for _, k := range keys {
		if v := c.Query(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
	}
	return 0
}
