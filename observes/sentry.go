package observes

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/lapisvisuals/lapis/config"
)

// NewSentry initialises the global Sentry client. It reports false, without
// error, when no DSN is configured.
func NewSentry(cfg *config.Sentry, serverName, release string) (bool, error) {
	if !cfg.Enabled() {
		return false, nil
	}
	if cfg.Release != "" {
		release = cfg.Release
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Endpoint,
		AttachStacktrace: true,
		SampleRate:       cfg.SampleRate,
		TracesSampleRate: cfg.SampleRate,
		ServerName:       serverName,
		Release:          release,
		Environment:      cfg.Environment,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// Flush waits up to timeout for buffered events.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}
