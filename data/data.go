// Package data owns the SQLite connection and schema.
package data

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/lapisvisuals/lapis/config"
	"github.com/lapisvisuals/lapis/logging/logger"
	_ "github.com/mattn/go-sqlite3"
)

// Data wraps the database handle.
type Data struct {
	db *sql.DB

	mu     sync.RWMutex
	closed bool
}

// New opens (creating if needed) the SQLite file from cfg, verifies the
// connection and applies the schema.
func New(ctx context.Context, cfg *config.Sqlite) (*Data, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, fmt.Errorf("sqlite: path is empty")
	}
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dsn(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	db.SetMaxOpenConns(max(cfg.MaxOpenConns, 1))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.WithFields(ctx, map[string]any{"path": cfg.Path}).Info("database connected")
	return &Data{db: db}, nil
}

func dsn(path string) string {
	q := url.Values{}
	q.Set("_foreign_keys", "on")
	q.Set("_busy_timeout", "5000")
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		q.Set("_journal_mode", "WAL")
	}
	return "file:" + strings.TrimPrefix(path, "file:") + "?" + q.Encode()
}

// DB returns the database handle.
func (d *Data) DB() *sql.DB {
	return d.db
}

// Ping reports whether the database answers.
func (d *Data) Ping(ctx context.Context) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}
	return d.db.PingContext(ctx)
}

// Health returns a status map for the health endpoint.
func (d *Data) Health(ctx context.Context) map[string]any {
	start := time.Now()
	err := d.Ping(ctx)
	status := map[string]any{
		"status":     "healthy",
		"latency_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		status["status"] = "unhealthy"
		status["error"] = err.Error()
	}
	return status
}

// Close closes the database. Safe to call more than once.
func (d *Data) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	return d.db.Close()
}
