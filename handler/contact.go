package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lapisvisuals/lapis/net/resp"
	"github.com/lapisvisuals/lapis/structs"
)

// SubmitContact stores a contact form submission.
func (h *Handler) SubmitContact(c *gin.Context) {
	var body structs.ContactBody
	if !bind(c, &body) {
		return
	}

	contact, err := h.svc.Contact.Submit(c.Request.Context(), &body)
	if err != nil {
		resp.FailWithError(c.Writer, err)
		return
	}

	resp.Success(c.Writer, &structs.ContactReply{
		Success: true,
		Message: "Contact information saved successfully",
		Data:    contact,
	})
}
