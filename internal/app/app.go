package app

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomrelay/internal/config"
	"github.com/vovakirdan/roomrelay/internal/core"
	"github.com/vovakirdan/roomrelay/internal/metrics"
	transporthttp "github.com/vovakirdan/roomrelay/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	sweeper         *core.Sweeper
	metrics         *metrics.Metrics
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
// It rejects a cfg that fails Validate.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	gen, err := core.NewGenerator(cfg.Rooms.CodeAlphabet)
	if err != nil {
		return nil, fmt.Errorf("init code generator: %w", err)
	}

	m := metrics.New()
	registry := core.NewRegistry(logger)
	hub := core.NewHub(registry, core.NewGroups(),
		core.WithGenerator(gen),
		core.WithMaxAttempts(cfg.Rooms.MaxAttempts),
		core.WithRecorder(m),
		core.WithLogger(logger),
	)
	sweeper := core.NewSweeper(registry, cfg.Rooms.SweepInterval, cfg.Rooms.TTL, m, logger)
	server := transporthttp.NewServer(hub, *cfg, logger, m.Handler())

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		sweeper:         sweeper,
		metrics:         m,
		log:             logger,
	}, nil
}

// Handler returns the HTTP handler serving every route.
func (a *App) Handler() stdhttp.Handler { return a.server.Handler }

// Hub returns the relay hub.
func (a *App) Hub() *core.Hub { return a.hub }

// Run starts the sweeper and the HTTP server and blocks until context
// cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	sweepCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	a.sweeper.Start(sweepCtx)

	go func() {
		a.log.Info().Str("addr", a.server.Addr).Msg("http server listening")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}
