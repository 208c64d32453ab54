package email

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lapisvisuals/lapis/config"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSenderSelectsProvider(t *testing.T) {
	s, err := NewSender(&config.Email{Provider: "simulated"})
	require.NoError(t, err)
	assert.Equal(t, "simulated", s.Name())

	_, err = NewSender(&config.Email{Provider: "pigeon"})
	assert.ErrorIs(t, err, ErrUnknownProvider)

	_, err = NewSender(&config.Email{Provider: "mailgun", Mailgun: &config.Mailgun{}})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewSender(&config.Email{Provider: "sendgrid", SendGrid: &config.SendGrid{Key: "k"}})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewSender(&config.Email{Provider: "smtp", SMTP: &config.SMTP{Host: "mx"}})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewSender(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewSenderFallsBackToGlobalFrom(t *testing.T) {
	s, err := NewSender(&config.Email{
		Provider: "sendgrid",
		From:     "hello@lapisvisuals.com",
		SendGrid: &config.SendGrid{Key: "k"},
	})
	require.NoError(t, err)
	assert.Equal(t, "sendgrid", s.Name())

	s, err = NewSender(&config.Email{
		Provider: "mailgun",
		From:     "hello@lapisvisuals.com",
		Mailgun:  &config.Mailgun{Key: "k", Domain: "mg.lapisvisuals.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, "mailgun", s.Name())
}

func TestSimulatedSenderMessageID(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	s := NewSimulatedSender(&config.Simulated{FailureRate: 0.1},
		WithRand(func() float64 { return 0.5 }),
		WithClock(func() time.Time { return at }),
	)

	id, err := s.Send(context.Background(), &Message{To: "a@b.co", Subject: "hi"})
	require.NoError(t, err)
	assert.Regexp(t, `^msg_1700000000123_[0-9a-z]{9}$`, id)
}

func TestSimulatedSenderInjectsFailure(t *testing.T) {
	s := NewSimulatedSender(&config.Simulated{FailureRate: 0.1},
		WithRand(func() float64 { return 0.05 }),
	)
	_, err := s.Send(context.Background(), &Message{To: "a@b.co"})
	assert.ErrorIs(t, err, ErrSimulatedFailure)
}

func TestSimulatedSenderHonoursContext(t *testing.T) {
	s := NewSimulatedSender(&config.Simulated{Delay: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Send(ctx, &Message{To: "a@b.co"})
	assert.ErrorIs(t, err, context.Canceled)
}

type flakySender struct {
	calls atomic.Int32
	err   error
}

func (f *flakySender) Name() string { return "flaky" }

func (f *flakySender) Send(context.Context, *Message) (string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	return "id-1", nil
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	next := &flakySender{err: errors.New("smtp down")}
	b := NewBreakerSender(next, &config.Breaker{FailureThreshold: 2, Timeout: time.Hour})

	for i := 0; i < 2; i++ {
		_, err := b.Send(context.Background(), &Message{})
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())

	_, err := b.Send(context.Background(), &Message{})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(2), next.calls.Load())
}

func TestBreakerIgnoresCancellation(t *testing.T) {
	next := &flakySender{err: context.Canceled}
	b := NewBreakerSender(next, &config.Breaker{FailureThreshold: 1})

	for i := 0; i < 3; i++ {
		_, err := b.Send(context.Background(), &Message{})
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestBreakerPassesID(t *testing.T) {
	b := NewBreakerSender(&flakySender{}, nil)
	id, err := b.Send(context.Background(), &Message{})
	require.NoError(t, err)
	assert.Equal(t, "id-1", id)
}

func TestRenderEscapesAndBreaksLines(t *testing.T) {
	html, text, err := Render("Hello <b>there</b>\r\nSecond line")
	require.NoError(t, err)

	assert.Contains(t, html, "LAPIS</h2>")
	assert.Contains(t, html, "Hello &lt;b&gt;there&lt;/b&gt;<br>Second line")
	assert.Contains(t, html, "This email was sent from LAPIS Video Production Agency")
	assert.True(t, strings.HasPrefix(text, "Hello <b>there</b>\nSecond line"))
}

func TestComposeDefaultsSenderName(t *testing.T) {
	m, err := Compose("a@b.co", "Subject", "Body", "  ")
	require.NoError(t, err)
	assert.Equal(t, DefaultSenderName, m.SenderName)
	assert.NotEmpty(t, m.HTML)
}

func TestSMTPBuildMultipart(t *testing.T) {
	s, err := NewSMTPSender(&config.SMTP{Host: "mx.example.com", Port: 587}, "hello@lapisvisuals.com")
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	body, err := s.build(&Message{To: "a@b.co", Subject: "Hi", Text: "plain", HTML: "<p>rich</p>"}, "<id@mx>")
	require.NoError(t, err)

	raw := string(body)
	assert.Contains(t, raw, "To: a@b.co\r\n")
	assert.Contains(t, raw, "Message-ID: <id@mx>\r\n")
	assert.Contains(t, raw, `"LAPIS Team" <hello@lapisvisuals.com>`)
	assert.Contains(t, raw, "multipart/alternative; boundary=")
	assert.Contains(t, raw, "text/plain; charset=utf-8")
	assert.Contains(t, raw, "<p>rich</p>")
}
