package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lapisvisuals/lapis/content"
	"github.com/lapisvisuals/lapis/logging/logger"
	"github.com/lapisvisuals/lapis/middleware"
	securityjwt "github.com/lapisvisuals/lapis/security/jwt"
	"github.com/lapisvisuals/lapis/service"
	"github.com/lapisvisuals/lapis/structs"
	"github.com/sirupsen/logrus"
)

type pageData struct {
	Title          string
	Message        string
	Catalog        *content.Catalog
	Admin          *securityjwt.Session
	Awards         *service.AwardsView
	LoadingDelayMS int64
	TitleSchedules map[string][]int64
	Stats          *structs.EmailStats
	Companies      []*structs.Company
}

func (h *Handler) page(c *gin.Context, title string) *pageData {
	d := &pageData{Title: title, Catalog: h.svc.Showcase.Catalog()}
	if s, ok := middleware.CurrentAdmin(c); ok {
		d.Admin = s
	}
	return d
}

// carouselView builds the carousel for a page request. ?w is the viewport
// width and ?page the page to show.
func (h *Handler) carouselView(c *gin.Context, variant content.Variant) *service.AwardsView {
	width := h.svc.Showcase.ResolveWidth(queryInt(c, "w", "width"), c.Request.UserAgent())
	return h.svc.Showcase.View(variant, width, queryInt(c, "page"), c.Query("action"))
}

// HomePage renders the video sections and the homepage awards.
func (h *Handler) HomePage(c *gin.Context) {
	d := h.page(c, "")
	d.Awards = h.carouselView(c, content.VariantHomepage)
	d.LoadingDelayMS = d.Catalog.Loading.CharDelay.Milliseconds()
	d.TitleSchedules = h.svc.Showcase.TitleSchedules(uint64(time.Now().UnixNano()))
	c.HTML(http.StatusOK, "home", d)
}

// AwardsPage renders the full awards carousel.
func (h *Handler) AwardsPage(c *gin.Context) {
	d := h.page(c, "Awards")
	d.Awards = h.carouselView(c, content.VariantAwards)
	c.HTML(http.StatusOK, "awards", d)
}

func (h *Handler) ServicesPage(c *gin.Context) {
	c.HTML(http.StatusOK, "services", h.page(c, "Services"))
}

func (h *Handler) ContactPage(c *gin.Context) {
	c.HTML(http.StatusOK, "contact", h.page(c, "Contact"))
}

// LoginPage renders the login form, or sends a signed-in admin on to the
// dashboard.
func (h *Handler) LoginPage(c *gin.Context) {
	if _, ok := middleware.CurrentAdmin(c); ok {
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login", h.page(c, "Login"))
}

func (h *Handler) DashboardPage(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard", h.page(c, "Dashboard"))
}

// EmailBlastPage renders stats, the compose form and the company list.
func (h *Handler) EmailBlastPage(c *gin.Context) {
	ctx := c.Request.Context()
	d := h.page(c, "Email Blast")

	stats, err := h.svc.Mailer.Stats(ctx)
	if err != nil {
		logger.WithFields(ctx, logrus.Fields{logrus.ErrorKey: err}).Error("load email stats")
		stats = &structs.EmailStats{}
	}
	d.Stats = stats

	companies, err := h.svc.Company.List(ctx)
	if err != nil {
		logger.WithFields(ctx, logrus.Fields{logrus.ErrorKey: err}).Error("load companies")
	}
	d.Companies = companies

	c.HTML(http.StatusOK, "email_blast", d)
}

// NotFound answers JSON under /api and an HTML page elsewhere.
func (h *Handler) NotFound(c *gin.Context) {
	if isAPI(c) {
		h.notFoundJSON(c)
		return
	}
	d := h.page(c, "Page not found")
	d.Message = "The page you are looking for does not exist."
	c.HTML(http.StatusNotFound, "error", d)
}
