package worker

import (
	"context"
	"time"
)

// ProvidePool creates and starts a Pool. The cleanup stops it, giving queued
// tasks up to 30 seconds.
func ProvidePool(cfg *Config) (*Pool, func(), error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	pool := NewPool(cfg)
	pool.Start()

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = pool.Stop(ctx)
	}

	return pool, cleanup, nil
}
