package structs

import "time"

// LoginBody is the admin login request.
type LoginBody struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ResizeBody reports a new viewport width for an open awards stream.
type ResizeBody struct {
	Width int `json:"width" form:"width" validate:"gte=1"`
}

// LoginReply is returned on successful login.
type LoginReply struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	User    AdminInfo `json:"user"`
}

// AdminInfo is the public view of an admin.
type AdminInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ContactBody is the contact form submission.
type ContactBody struct {
	Name    string `json:"name" form:"name" validate:"required"`
	Email   string `json:"email" form:"email" validate:"required,address"`
	Message string `json:"message" form:"message" validate:"required"`
}

// ContactReply acknowledges a stored contact.
type ContactReply struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *Contact `json:"data"`
}

// CompanyBody creates a blast recipient.
type CompanyBody struct {
	Name  string `json:"name" form:"name" validate:"required,max=200"`
	Email string `json:"email" form:"email" validate:"required,address"`
}

// SendEmailBody is a single email request.
type SendEmailBody struct {
	To         string `json:"to" form:"to" validate:"required,address"`
	Subject    string `json:"subject" form:"subject" validate:"required"`
	Content    string `json:"content" form:"content" validate:"required"`
	SenderName string `json:"senderName" form:"senderName"`
}

// SendEmailReply describes a delivered email.
type SendEmailReply struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Details SentEmailInfo `json:"details"`
}

// SentEmailInfo is the delivery receipt.
type SentEmailInfo struct {
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	SentAt    time.Time `json:"sentAt"`
	MessageID string    `json:"messageId"`
}

// BlastBody sends one email to many recipients. Without Recipients every
// company receives it.
type BlastBody struct {
	Subject    string   `json:"subject" form:"subject" validate:"required"`
	Content    string   `json:"content" form:"content" validate:"required"`
	SenderName string   `json:"senderName" form:"senderName"`
	Recipients []string `json:"recipients" form:"recipients"`
}

// BlastResult is the outcome for one recipient.
type BlastResult struct {
	To        string `json:"to"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// BlastReply summarises a blast.
type BlastReply struct {
	Total   int           `json:"total"`
	Sent    int           `json:"sent"`
	Failed  int           `json:"failed"`
	Results []BlastResult `json:"results"`
}

// EmailStats feeds the email blast dashboard.
type EmailStats struct {
	SentToday         int     `json:"sentToday"`
	TotalRecipients   int     `json:"totalRecipients"`
	ReachedRecipients int     `json:"reachedRecipients"`
	OpenRate          float64 `json:"openRate"`
	ClickRate         float64 `json:"clickRate"`
}

// PreviewReply carries rendered email HTML.
type PreviewReply struct {
	HTML string `json:"html"`
	Text string `json:"text"`
}
