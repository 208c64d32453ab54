package email

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lapisvisuals/lapis/config"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender sends through the SendGrid v3 API.
type SendGridSender struct {
	client *sendgrid.Client
	from   string
}

// NewSendGridSender validates cfg and builds a client.
func NewSendGridSender(cfg *config.SendGrid, defaultFrom string) (*SendGridSender, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: sendgrid section missing", ErrInvalidConfig)
	}
	from := firstNonEmpty(cfg.From, defaultFrom)
	if cfg.Key == "" || from == "" {
		return nil, fmt.Errorf("%w: sendgrid needs key and from", ErrInvalidConfig)
	}
	return &SendGridSender{client: sendgrid.NewSendClient(cfg.Key), from: from}, nil
}

func (s *SendGridSender) Name() string { return "sendgrid" }

// Send posts msg to SendGrid. Anything but 202 Accepted is a failure.
func (s *SendGridSender) Send(ctx context.Context, msg *Message) (string, error) {
	senderName := firstNonEmpty(msg.SenderName, DefaultSenderName)
	from := mail.NewEmail(senderName, s.from)
	to := mail.NewEmail("", msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Text, msg.HTML)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return "", fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("sendgrid send: status code %d", response.StatusCode)
	}

	if ids := response.Headers["X-Message-Id"]; len(ids) > 0 {
		return ids[0], nil
	}
	return "", nil
}
