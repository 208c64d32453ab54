package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lapisvisuals/lapis/middleware"
	"github.com/lapisvisuals/lapis/net/cookie"
	"github.com/lapisvisuals/lapis/net/resp"
	"github.com/lapisvisuals/lapis/structs"
	"github.com/sirupsen/logrus"
)

// Login checks credentials and sets the session cookie.
func (h *Handler) Login(c *gin.Context) {
	var body structs.LoginBody
	if !bind(c, &body) {
		return
	}

	res, err := h.svc.Auth.Login(c.Request.Context(), &body)
	if err != nil {
		resp.FailWithError(c.Writer, err)
		return
	}

	cookie.SetSession(c.Writer, res.Token, res.Expires, h.cookie)
	h.log.WithFieldsCtx(c.Request.Context(), logrus.Fields{
		"admin_id": res.Admin.ID,
		"username": res.Admin.Username,
	}).Info("admin signed in")

	resp.Success(c.Writer, &structs.LoginReply{
		Success: true,
		Message: "Login successful",
		User:    structs.AdminInfo{ID: res.Admin.ID, Username: res.Admin.Username},
	})
}

// Logout clears the session cookie. Tokens are stateless, so an already
// issued bearer token stays valid until it expires.
func (h *Handler) Logout(c *gin.Context) {
	cookie.ClearSession(c.Writer, h.cookie)
	resp.Success(c.Writer, map[string]any{"success": true, "message": "Logged out"})
}

// Me returns the signed-in admin.
func (h *Handler) Me(c *gin.Context) {
	s, _ := middleware.CurrentAdmin(c)
	resp.Success(c.Writer, &structs.AdminInfo{ID: s.AdminID, Username: s.Username})
}
