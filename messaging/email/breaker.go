package email

import (
	"context"
	"errors"

	"github.com/lapisvisuals/lapis/config"
	"github.com/lapisvisuals/lapis/logging/logger"
	"github.com/sony/gobreaker"
)

// ErrUnavailable is returned while the breaker is open.
var ErrUnavailable = errors.New("email provider temporarily unavailable")

// BreakerSender stops calling a provider after repeated failures and lets
// a probe through once the open timeout passes.
type BreakerSender struct {
	next Sender
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerSender wraps next. A nil cfg uses gobreaker's defaults with a
// threshold of five consecutive failures.
func NewBreakerSender(next Sender, cfg *config.Breaker) *BreakerSender {
	threshold := uint32(5)
	st := gobreaker.Settings{Name: next.Name()}
	if cfg != nil {
		st.MaxRequests = cfg.MaxRequests
		st.Interval = cfg.Interval
		st.Timeout = cfg.Timeout
		if cfg.FailureThreshold > 0 {
			threshold = cfg.FailureThreshold
		}
	}
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= threshold
	}
	// a caller giving up is not a provider fault
	st.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		logger.Warnf(context.Background(), "email breaker %s: %s -> %s", name, from, to)
	}
	return &BreakerSender{next: next, cb: gobreaker.NewCircuitBreaker(st)}
}

func (b *BreakerSender) Name() string { return b.next.Name() }

// State returns the breaker state.
func (b *BreakerSender) State() gobreaker.State { return b.cb.State() }

func (b *BreakerSender) Send(ctx context.Context, msg *Message) (string, error) {
	out, err := b.cb.Execute(func() (any, error) {
		return b.next.Send(ctx, msg)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", ErrUnavailable
	}
	if err != nil {
		return "", err
	}
	return out.(string), nil
}
