// Package server assembles the gin engine and runs it over net/http.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lapisvisuals/lapis/config"
	"github.com/lapisvisuals/lapis/handler"
	"github.com/lapisvisuals/lapis/logging/logger"
	"github.com/lapisvisuals/lapis/middleware"
	"github.com/lapisvisuals/lapis/web"
)

const defaultShutdownTimeout = 10 * time.Second

// NewEngine creates the engine with middleware, templates, static assets
// and every route of h.
func NewEngine(cfg *config.Config, h *handler.Handler, log *logger.Logger) (*gin.Engine, error) {
	mode := cfg.RunMode
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	case "development":
		mode = gin.DebugMode
	default:
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	engine := gin.New()
	engine.Use(middleware.Trace(), middleware.AccessLog(log), middleware.Recovery(log))
	engine.SetHTMLTemplate(tmpl)
	engine.StaticFS("/static", web.Static())

	// optimized images live on disk, next to the binary's working directory
	if cfg.Images != nil && cfg.Images.OutputDir != "" {
		if fi, err := os.Stat(cfg.Images.OutputDir); err == nil && fi.IsDir() {
			engine.Static("/images", cfg.Images.OutputDir)
		}
	}

	h.RegisterRoutes(engine)
	return engine, nil
}

// Server is the HTTP server.
type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration
	log             *logger.Logger
}

// New wraps handler in an http.Server configured from cfg.
func New(cfg *config.Server, handler http.Handler, log *logger.Logger) *Server {
	s := &Server{
		srv: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			// zero keeps the awards stream open
			WriteTimeout: cfg.WriteTimeout,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
		log:             log,
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = defaultShutdownTimeout
	}
	return s
}

// Listen opens the listener. Port 0 picks a free port.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("error starting server: %w", err)
	}
	return ln, nil
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
// Request contexts derive from ctx, so open streams end with it.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.srv.BaseContext = func(net.Listener) context.Context { return ctx }

	errChan := make(chan error, 1)
	go func() {
		s.log.Infof(context.Background(), "Listening and serving HTTP on: %s", ln.Addr())
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
			return
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.log.Errorf(context.Background(), "Shutdown error: %v", err)
		_ = s.srv.Close()
		return fmt.Errorf("shutdown error: %w", err)
	}
	s.log.Info(context.Background(), "Server closed")
	return <-errChan
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}
