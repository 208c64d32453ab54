package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lapisvisuals/lapis/net/resp"
	"github.com/lapisvisuals/lapis/paging"
	"github.com/lapisvisuals/lapis/structs"
)

func (h *Handler) ListCompanies(c *gin.Context) {
	companies, err := h.svc.Company.List(c.Request.Context())
	if err != nil {
		resp.FailWithError(c.Writer, err)
		return
	}
	resp.Success(c.Writer, companies)
}

// CreateCompany adds a company to the mailing list.
func (h *Handler) CreateCompany(c *gin.Context) {
	var body structs.CompanyBody
	if !bind(c, &body) {
		return
	}
	company, err := h.svc.Company.Create(c.Request.Context(), &body)
	if err != nil {
		resp.FailWithError(c.Writer, err)
		return
	}
	resp.WithStatusCode(c.Writer, http.StatusCreated, company)
}

// ListContacts pages through contact submissions, newest first.
//
//	GET /api/admin/contacts?limit=20&cursor=...
func (h *Handler) ListContacts(c *gin.Context) {
	params := paging.Params{
		Cursor: c.Query("cursor"),
		Limit:  queryInt(c, "limit"),
	}
	result, err := h.svc.Contact.List(c.Request.Context(), params)
	if err != nil {
		resp.FailWithError(c.Writer, err)
		return
	}
	resp.Success(c.Writer, result)
}

func (h *Handler) EmailStats(c *gin.Context) {
	stats, err := h.svc.Mailer.Stats(c.Request.Context())
	if err != nil {
		resp.FailWithError(c.Writer, err)
		return
	}
	resp.Success(c.Writer, stats)
}
