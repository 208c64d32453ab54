package logger

import (
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// SentryHook forwards error level entries to Sentry.
type SentryHook struct {
	hub *sentry.Hub
}

// NewSentryHook reports through hub, or the current hub when nil.
func NewSentryHook(hub *sentry.Hub) *SentryHook {
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	return &SentryHook{hub: hub}
}

// Levels returns error and above.
func (h *SentryHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
}

// Fire sends the entry, preferring an attached error over the message.
func (h *SentryHook) Fire(entry *logrus.Entry) error {
	hub := h.hub.Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelError)
		for k, v := range entry.Data {
			if k == ErrorKey {
				continue
			}
			if k == traceKey {
				if s, ok := v.(string); ok {
					scope.SetTag(traceKey, s)
				}
				continue
			}
			scope.SetExtra(k, v)
		}
	})

	if err, ok := entry.Data[ErrorKey].(error); ok && err != nil {
		hub.CaptureException(err)
		return nil
	}
	if entry.Message != "" {
		hub.CaptureException(errors.New(entry.Message))
	}
	return nil
}
