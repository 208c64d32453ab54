package email

import (
	"context"
	"fmt"

	"github.com/lapisvisuals/lapis/config"
	"github.com/mailgun/mailgun-go/v4"
)

// MailgunSender sends through the Mailgun HTTP API.
type MailgunSender struct {
	mg   *mailgun.MailgunImpl
	from string
}

// NewMailgunSender validates cfg and builds a client. defaultFrom is used
// when the mailgun section has no from address.
func NewMailgunSender(cfg *config.Mailgun, defaultFrom string) (*MailgunSender, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: mailgun section missing", ErrInvalidConfig)
	}
	from := firstNonEmpty(cfg.From, defaultFrom)
	if cfg.Key == "" || cfg.Domain == "" || from == "" {
		return nil, fmt.Errorf("%w: mailgun needs key, domain and from", ErrInvalidConfig)
	}

	mg := mailgun.NewMailgun(cfg.Domain, cfg.Key)
	if cfg.APIBase != "" {
		mg.SetAPIBase(cfg.APIBase)
	}
	return &MailgunSender{mg: mg, from: from}, nil
}

func (s *MailgunSender) Name() string { return "mailgun" }

// Send queues msg with Mailgun and returns the queued id.
func (s *MailgunSender) Send(ctx context.Context, msg *Message) (string, error) {
	message := s.mg.NewMessage(fromHeader(msg.SenderName, s.from), msg.Subject, msg.Text, msg.To)
	if msg.HTML != "" {
		message.SetHtml(msg.HTML)
	}

	_, id, err := s.mg.Send(ctx, message)
	if err != nil {
		return "", fmt.Errorf("mailgun send: %w", err)
	}
	return id, nil
}
