package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lapisvisuals/lapis/concurrency"
	"github.com/lapisvisuals/lapis/concurrency/worker"
	"github.com/lapisvisuals/lapis/config"
	"github.com/lapisvisuals/lapis/content"
	"github.com/lapisvisuals/lapis/data"
	"github.com/lapisvisuals/lapis/handler"
	"github.com/lapisvisuals/lapis/logging/logger"
	"github.com/lapisvisuals/lapis/messaging/email"
	"github.com/lapisvisuals/lapis/observes"
	"github.com/lapisvisuals/lapis/server"
	"github.com/lapisvisuals/lapis/service"
	"github.com/lapisvisuals/lapis/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultMaxStreams = 256

func newServeCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, *configFile)
		},
	}
}

// app is what serve and seed both need.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	data    *data.Data
	pool    *worker.Pool
	svc     *service.Service
	cleanup []func()
}

func (a *app) close() {
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i]()
	}
}

// newApp loads the config and opens every dependency. Call close when done.
func newApp(ctx context.Context, configFile string) (*app, error) {
	cfg, err := config.Init(configFile)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg}

	cleanupLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("[Logger] initialization error: %w", err)
	}
	a.cleanup = append(a.cleanup, cleanupLogger)
	a.log = logger.StdLogger()
	a.log.SetVersion(version.Version)

	if ok, err := observes.NewSentry(cfg.Observes.Sentry, cfg.AppName, version.Version); err != nil {
		a.log.Warnf(ctx, "[Sentry] disabled: %v", err)
	} else if ok {
		a.log.AddHook(logger.NewSentryHook(nil))
		a.cleanup = append(a.cleanup, func() { observes.Flush(2 * time.Second) })
	}

	a.data, err = data.New(ctx, cfg.Data.Sqlite)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("[Data] initialization error: %w", err)
	}
	a.cleanup = append(a.cleanup, func() { _ = a.data.Close() })

	sender, err := email.NewSender(cfg.Email)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("[Email] initialization error: %w", err)
	}

	pool, stopPool, err := worker.ProvidePool(&worker.Config{
		MaxWorkers:  cfg.Email.Workers,
		QueueSize:   cfg.Email.QueueSize,
		TaskTimeout: time.Minute,
	})
	if err != nil {
		a.close()
		return nil, fmt.Errorf("[Worker] initialization error: %w", err)
	}
	a.pool = pool
	a.cleanup = append(a.cleanup, stopPool)

	catalog, err := content.Load()
	if err != nil {
		a.close()
		return nil, fmt.Errorf("[Content] %w", err)
	}

	a.svc = service.New(service.Deps{
		Config:  cfg,
		Data:    a.data,
		Catalog: catalog,
		Sender:  sender,
		Pool:    pool,
		Logger:  a.log,
	})

	a.log.WithFieldsCtx(ctx, logrus.Fields{
		"provider": sender.Name(),
		"database": cfg.Data.Sqlite.Path,
	}).Info("dependencies ready")
	return a, nil
}

func runServe(ctx context.Context, configFile string) error {
	a, err := newApp(ctx, configFile)
	if err != nil {
		return err
	}
	defer a.close()
	cfg, log := a.cfg, a.log

	if err := bootstrapAdmin(ctx, a); err != nil {
		return err
	}

	maxStreams := cfg.Carousel.MaxStreams
	if maxStreams <= 0 {
		maxStreams = defaultMaxStreams
	}
	streams, err := concurrency.NewManager(int32(maxStreams))
	if err != nil {
		return err
	}

	h := handler.New(a.svc, cfg, a.data, streams, log)
	engine, err := server.NewEngine(cfg, h, log)
	if err != nil {
		return err
	}

	config.Watch(func(c *config.Config) {
		log.Apply(c.Logger)
		log.Info(context.Background(), "config reloaded")
	}, func(err error) {
		log.Warnf(context.Background(), "config reload failed: %v", err)
	})

	log.Infof(ctx, "Starting %s %s", cfg.AppName, version.Version)
	return server.New(cfg.Server, engine, log).Run(ctx)
}

// bootstrapAdmin creates the configured admin when none exists yet.
func bootstrapAdmin(ctx context.Context, a *app) error {
	has, err := a.svc.Auth.HasAdmins(ctx)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	admin := a.cfg.Auth.Admin
	if admin == nil || admin.Password == "" {
		a.log.Warn(ctx, "no admin account exists; set auth.admin.password or run `lapis seed`")
		return nil
	}
	created, err := a.svc.Auth.EnsureAdmin(ctx, admin.Username, admin.Password)
	if err != nil {
		return err
	}
	if created {
		a.log.Infof(ctx, "created admin %q", admin.Username)
	}
	return nil
}
