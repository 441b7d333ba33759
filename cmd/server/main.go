package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomrelay/internal/app"
	"github.com/vovakirdan/roomrelay/internal/config"
	applog "github.com/vovakirdan/roomrelay/internal/log"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:          "roomrelay",
		Short:        "Real-time relay for short-lived, code-addressed rooms",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.Flags().AddFlagSet(serve.Flags())
	root.AddCommand(serve, newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var (
		configPath string
		overrides  config.Config
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the relay server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configPath, overrides)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to config file (default ./config.yaml)")
	cmd.Flags().StringVar(&overrides.Addr, "addr", "", "HTTP listen address")
	cmd.Flags().StringVar(&overrides.Log.Level, "log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().DurationVar(&overrides.Rooms.TTL, "room-ttl", 0, "room code lifetime")
	cmd.Flags().DurationVar(&overrides.Rooms.SweepInterval, "sweep-interval", 0, "room expiry sweep interval")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func serve(parent context.Context, configPath string, overrides config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	cfg, path, err := config.LoadValidated(&bootLogger, configPath, overrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := applog.New(cfg.Log)
	logger.Info().Str("config", path).Msg("configuration loaded")

	application, err := app.New(&cfg, logger)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}

	logger.Info().
		Str("addr", cfg.Addr).
		Dur("room_ttl", cfg.Rooms.TTL).
		Dur("sweep_interval", cfg.Rooms.SweepInterval).
		Str("code_alphabet", cfg.Rooms.CodeAlphabet).
		Str("version", version).
		Msg("starting roomrelay")
	if err := application.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server exited with error")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
