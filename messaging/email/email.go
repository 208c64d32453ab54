// Package email delivers outgoing mail through a configured provider.
package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lapisvisuals/lapis/config"
)

// DefaultSenderName is used when a message does not name its sender.
const DefaultSenderName = "LAPIS Team"

var (
	// ErrInvalidConfig is returned when a provider is missing settings.
	ErrInvalidConfig = errors.New("invalid email configuration")
	// ErrUnknownProvider is returned for provider names this package lacks.
	ErrUnknownProvider = errors.New("unknown email provider")
)

// Message is one outgoing email. HTML and Text are alternative bodies of
// the same content.
type Message struct {
	To         string
	Subject    string
	SenderName string
	HTML       string
	Text       string
}

// Sender is a generic interface for sending emails.
// Send returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, msg *Message) (string, error)
	Name() string
}

// fromHeader formats "Name <address>".
func fromHeader(name, address string) string {
	if name == "" {
		name = DefaultSenderName
	}
	return fmt.Sprintf("%q <%s>", name, address)
}

// NewSender returns the provider named by cfg.Provider wrapped in a
// circuit breaker.
func NewSender(cfg *config.Email) (Sender, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}

	var (
		sender Sender
		err    error
	)
	switch strings.ToLower(cfg.Provider) {
	case "", "simulated":
		sender = NewSimulatedSender(cfg.Simulated)
	case "smtp":
		sender, err = NewSMTPSender(cfg.SMTP, cfg.From)
	case "mailgun":
		sender, err = NewMailgunSender(cfg.Mailgun, cfg.From)
	case "sendgrid":
		sender, err = NewSendGridSender(cfg.SendGrid, cfg.From)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return NewBreakerSender(sender, cfg.Breaker), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
