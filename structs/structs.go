// Package structs defines the domain models and request bodies.
package structs

import "time"

// Contact is a message left through the contact form.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Company is an email blast recipient.
type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Admin is a back-office user.
type Admin struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// EmailStatus is the outcome recorded for a send attempt.
type EmailStatus string

const (
	EmailSent   EmailStatus = "sent"
	EmailFailed EmailStatus = "failed"
)

// EmailLog is one send attempt.
type EmailLog struct {
	ID         int64       `json:"id"`
	MessageID  string      `json:"message_id"`
	Recipient  string      `json:"recipient"`
	Subject    string      `json:"subject"`
	SenderName string      `json:"sender_name"`
	Status     EmailStatus `json:"status"`
	Error      string      `json:"error,omitempty"`
	SentAt     time.Time   `json:"sent_at"`
}
