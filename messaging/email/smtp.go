package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lapisvisuals/lapis/config"
)

// SMTPSender delivers over SMTP with STARTTLS when the server offers it.
type SMTPSender struct {
	host     string
	addr     string
	username string
	password string
	from     string
	now      func() time.Time
}

// NewSMTPSender validates cfg. Credentials are optional for relays that
// accept unauthenticated mail.
func NewSMTPSender(cfg *config.SMTP, defaultFrom string) (*SMTPSender, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: smtp section missing", ErrInvalidConfig)
	}
	from := firstNonEmpty(cfg.From, defaultFrom)
	if cfg.Host == "" || cfg.Port <= 0 || from == "" {
		return nil, fmt.Errorf("%w: smtp needs host, port and from", ErrInvalidConfig)
	}
	return &SMTPSender{
		host:     cfg.Host,
		addr:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		username: cfg.Username,
		password: cfg.Password,
		from:     from,
		now:      time.Now,
	}, nil
}

func (s *SMTPSender) Name() string { return "smtp" }

// Send dials the server and delivers msg. The message id is generated
// locally and written into the Message-ID header.
func (s *SMTPSender) Send(ctx context.Context, msg *Message) (string, error) {
	id := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.host)
	body, err := s.build(msg, id)
	if err != nil {
		return "", err
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", s.addr)
	if err != nil {
		return "", fmt.Errorf("smtp dial: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		_ = conn.Close()
		return "", fmt.Errorf("smtp client: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return "", fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if s.username != "" {
		if err := c.Auth(smtp.PlainAuth("", s.username, s.password, s.host)); err != nil {
			return "", fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := c.Mail(s.from); err != nil {
		return "", fmt.Errorf("smtp mail: %w", err)
	}
	if err := c.Rcpt(msg.To); err != nil {
		return "", fmt.Errorf("smtp rcpt: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return "", fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return "", fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("smtp write: %w", err)
	}
	_ = c.Quit()
	return id, nil
}

// build renders msg as a multipart/alternative MIME message.
func (s *SMTPSender) build(msg *Message, id string) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	headers := []struct{ k, v string }{
		{"From", fromHeader(mime.QEncoding.Encode("utf-8", firstNonEmpty(msg.SenderName, DefaultSenderName)), s.from)},
		{"To", msg.To},
		{"Subject", mime.QEncoding.Encode("utf-8", msg.Subject)},
		{"Date", s.now().Format(time.RFC1123Z)},
		{"Message-ID", id},
		{"MIME-Version", "1.0"},
		{"Content-Type", "multipart/alternative; boundary=" + mw.Boundary()},
	}
	var head bytes.Buffer
	for _, h := range headers {
		fmt.Fprintf(&head, "%s: %s\r\n", h.k, h.v)
	}
	head.WriteString("\r\n")

	parts := []struct{ ctype, body string }{
		{"text/plain; charset=utf-8", msg.Text},
		{"text/html; charset=utf-8", msg.HTML},
	}
	for _, p := range parts {
		if p.body == "" {
			continue
		}
		pw, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {p.ctype}})
		if err != nil {
			return nil, err
		}
		if _, err := pw.Write([]byte(p.body)); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return append(head.Bytes(), buf.Bytes()...), nil
}
