package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lapisvisuals/lapis/concurrency"
	"github.com/lapisvisuals/lapis/concurrency/worker"
	"github.com/lapisvisuals/lapis/config"
	"github.com/lapisvisuals/lapis/content"
	"github.com/lapisvisuals/lapis/data"
	"github.com/lapisvisuals/lapis/handler"
	"github.com/lapisvisuals/lapis/logging/logger"
	"github.com/lapisvisuals/lapis/messaging/email"
	"github.com/lapisvisuals/lapis/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	d, err := data.New(context.Background(), &config.Sqlite{Path: filepath.Join(t.TempDir(), "server.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	pool := worker.NewPool(&worker.Config{MaxWorkers: 1, QueueSize: 1})
	pool.Start()
	t.Cleanup(func() { _ = pool.Stop(context.Background()) })

	svc := service.New(service.Deps{
		Config:  cfg,
		Data:    d,
		Catalog: content.MustLoad(),
		Sender:  email.NewSimulatedSender(nil),
		Pool:    pool,
	})
	streams, err := concurrency.NewManager(4)
	require.NoError(t, err)

	e, err := NewEngine(cfg, handler.New(svc, cfg, d, streams, logger.StdLogger()), logger.StdLogger())
	require.NoError(t, err)
	return e
}

func testConfig(t *testing.T) *config.Config {
	images := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(images, "logo.txt"), []byte("lapis"), 0o600))
	return &config.Config{
		RunMode: "test",
		Server:  &config.Server{Host: "127.0.0.1", ShutdownTimeout: time.Second},
		Auth: &config.Auth{
			JWT:    &config.JWT{Secret: "test-secret", Expire: 1},
			Cookie: &config.Cookie{Name: "lapis_session"},
		},
		Email:    &config.Email{},
		Carousel: &config.Carousel{},
		Images:   &config.Images{OutputDir: images},
	}
}

func TestServeAndShutdown(t *testing.T) {
	cfg := testConfig(t)
	srv := New(cfg.Server, testEngine(t, cfg), logger.StdLogger())

	ln, err := srv.Listen()
	require.NoError(t, err)
	base := fmt.Sprintf("http://%s", ln.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	get := func(path string) (int, string) {
		res, err := http.Get(base + path)
		require.NoError(t, err)
		defer res.Body.Close()
		b, _ := io.ReadAll(res.Body)
		return res.StatusCode, string(b)
	}

	code, body := get("/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "healthy")

	code, _ = get("/static/css/site.css")
	assert.Equal(t, http.StatusOK, code)

	code, body = get("/images/logo.txt")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "lapis", body)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServeEndsOpenStreams(t *testing.T) {
	cfg := testConfig(t)
	srv := New(cfg.Server, testEngine(t, cfg), logger.StdLogger())

	ln, err := srv.Listen()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	res, err := http.Get(fmt.Sprintf("http://%s/api/awards/stream", ln.Addr()))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("stream kept the server alive")
	}
}
