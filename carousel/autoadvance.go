package carousel

import (
	"context"
	"sync"
	"time"
)

// DefaultPeriod is the auto-advance interval of the awards showcase.
const DefaultPeriod = 5000 * time.Millisecond

// Ticker is the part of *time.Ticker the auto-advancer uses.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type stdTicker struct {
	*time.Ticker
}

func (t stdTicker) Chan() <-chan time.Time { return t.C }

func newStdTicker(d time.Duration) Ticker {
	return stdTicker{time.NewTicker(d)}
}

// Option configures an AutoAdvancer.
type Option func(*AutoAdvancer)

// WithOnAdvance registers fn to run after every tick with the new state.
// fn runs on the timer goroutine and must not call Stop or Reset.
func WithOnAdvance(fn func(State)) Option {
	return func(a *AutoAdvancer) {
		a.onAdvance = fn
	}
}

// WithTicker replaces the ticker factory.
func WithTicker(fn TickerFunc) Option {
	return func(a *AutoAdvancer) {
		if fn != nil {
			a.newTicker = fn
		}
	}
}

// AutoAdvancer owns the recurring timer that advances a Controller.
// The timer lives from Start until Stop, cancellation of the Start context,
// or the next Reset.
type AutoAdvancer struct {
	ctrl      *Controller
	period    time.Duration
	onAdvance func(State)
	newTicker TickerFunc

	mu     sync.Mutex
	parent context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewAutoAdvancer returns a stopped advancer for ctrl.
// A non-positive period falls back to DefaultPeriod.
func NewAutoAdvancer(ctrl *Controller, period time.Duration, opts ...Option) *AutoAdvancer {
	if period <= 0 {
		period = DefaultPeriod
	}
	a := &AutoAdvancer{
		ctrl:      ctrl,
		period:    period,
		newTicker: newStdTicker,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Period returns the tick interval.
func (a *AutoAdvancer) Period() time.Duration {
	return a.period
}

// Controller returns the controller being advanced.
func (a *AutoAdvancer) Controller() *Controller {
	return a.ctrl
}

// Running reports whether a timer is scheduled.
func (a *AutoAdvancer) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.done == nil {
		return false
	}
	select {
	case <-a.done:
		return false
	default:
		return true
	}
}

// Start schedules the timer. A timer that is already running is replaced.
func (a *AutoAdvancer) Start(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
	a.parent = ctx
	a.startLocked()
}

// Stop cancels the timer and waits for it to exit. Safe to call repeatedly.
func (a *AutoAdvancer) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
}

// Reset applies a new page count. A running timer is cancelled before the
// count changes and rescheduled afterwards, so no tick sees a stale total.
func (a *AutoAdvancer) Reset(totalPages int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	running := a.cancel != nil
	a.stopLocked()
	a.ctrl.SetTotal(totalPages)

	if running && a.parent != nil && a.parent.Err() == nil {
		a.startLocked()
	}
}

func (a *AutoAdvancer) startLocked() {
	ctx, cancel := context.WithCancel(a.parent)
	done := make(chan struct{})
	t := a.newTicker(a.period)

	a.cancel = cancel
	a.done = done

	go a.run(ctx, t, done)
}

func (a *AutoAdvancer) stopLocked() {
	if a.cancel == nil {
		return
	}
	a.cancel()
	<-a.done
	a.cancel = nil
	a.done = nil
}

func (a *AutoAdvancer) run(ctx context.Context, t Ticker, done chan struct{}) {
	defer close(done)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.Chan():
			// a tick that races cancellation must not move the cursor
			if ctx.Err() != nil {
				return
			}
			state := a.ctrl.advance()
			if a.onAdvance != nil {
				a.onAdvance(state)
			}
		}
	}
}
