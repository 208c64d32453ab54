package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lapisvisuals/lapis/net/resp"
	"github.com/lapisvisuals/lapis/structs"
)

// SendEmail sends one message and records it.
func (h *Handler) SendEmail(c *gin.Context) {
	var body structs.SendEmailBody
	if !bind(c, &body) {
		return
	}

	info, err := h.svc.Mailer.Send(c.Request.Context(), &body)
	if err != nil {
		resp.FailWithError(c.Writer, err)
		return
	}

	resp.Success(c.Writer, &structs.SendEmailReply{
		Success: true,
		Message: "Email sent successfully",
		Details: *info,
	})
}

// PreviewEmail renders a message without sending it.
func (h *Handler) PreviewEmail(c *gin.Context) {
	var body structs.SendEmailBody
	if !bind(c, &body) {
		return
	}
	preview, err := h.svc.Mailer.Preview(&body)
	if err != nil {
		resp.FailWithError(c.Writer, err)
		return
	}
	resp.Success(c.Writer, preview)
}

// BlastEmail sends one message to many recipients, every company when the
// body lists none.
func (h *Handler) BlastEmail(c *gin.Context) {
	var body structs.BlastBody
	if !bind(c, &body) {
		return
	}
	reply, err := h.svc.Mailer.Blast(c.Request.Context(), &body)
	if err != nil {
		resp.FailWithError(c.Writer, err)
		return
	}
	resp.Success(c.Writer, reply)
}
