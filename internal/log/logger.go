package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vovakirdan/roomrelay/internal/config"
)

// New builds a zerolog logger writing human-readable lines to stdout.
// When cfg.File is set, JSON lines are also written to a size-rotated file.
func New(cfg config.LogConfig) *zerolog.Logger {
	return newWithConsole(cfg, os.Stdout)
}

func newWithConsole(cfg config.LogConfig, console io.Writer) *zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var output io.Writer = zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.RFC3339,
	}
	if cfg.File != "" {
		output = zerolog.MultiLevelWriter(output, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		})
	}

	logger := zerolog.New(output).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	return &logger
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
