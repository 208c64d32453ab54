package email

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/lapisvisuals/lapis/config"
	"github.com/lapisvisuals/lapis/logging/logger"
	"github.com/lapisvisuals/lapis/nanoid"
	"github.com/sirupsen/logrus"
)

// ErrSimulatedFailure is the failure the simulated provider injects.
var ErrSimulatedFailure = errors.New("simulated delivery failure")

// SimulatedSender logs messages instead of delivering them. It waits for
// the configured delay and fails a configured share of sends.
type SimulatedSender struct {
	delay       time.Duration
	failureRate float64
	rand        func() float64
	now         func() time.Time
}

// SimulatedOption customises a SimulatedSender.
type SimulatedOption func(*SimulatedSender)

// WithRand replaces the random source used to decide failures.
func WithRand(fn func() float64) SimulatedOption {
	return func(s *SimulatedSender) { s.rand = fn }
}

// WithClock replaces the clock used for message ids.
func WithClock(fn func() time.Time) SimulatedOption {
	return func(s *SimulatedSender) { s.now = fn }
}

// NewSimulatedSender returns a sender using cfg's delay and failure rate.
// A nil cfg sends instantly and never fails.
func NewSimulatedSender(cfg *config.Simulated, opts ...SimulatedOption) *SimulatedSender {
	s := &SimulatedSender{rand: rand.Float64, now: time.Now}
	if cfg != nil {
		s.delay = cfg.Delay
		s.failureRate = min(max(cfg.FailureRate, 0), 1)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SimulatedSender) Name() string { return "simulated" }

// Send waits out the delay, then succeeds with an id of the form
// msg_<unix millis>_<9 chars> or fails with ErrSimulatedFailure.
func (s *SimulatedSender) Send(ctx context.Context, msg *Message) (string, error) {
	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-t.C:
		}
	}

	if s.failureRate > 0 && s.rand() < s.failureRate {
		return "", ErrSimulatedFailure
	}

	suffix, err := nanoid.NumberLower(9)
	if err != nil {
		return "", err
	}
	id := fmt.Sprintf("msg_%d_%s", s.now().UnixMilli(), suffix)

	logger.WithFields(ctx, logrus.Fields{
		"to":          msg.To,
		"subject":     msg.Subject,
		"message_id":  id,
		"html_length": len(msg.HTML),
	}).Info("simulated email delivered")
	return id, nil
}
