package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	Log   LogConfig   `mapstructure:"log" yaml:"log"`
	Rooms RoomsConfig `mapstructure:"rooms" yaml:"rooms"`
	WS    WSConfig    `mapstructure:"ws" yaml:"ws"`
}

// LogConfig controls log level and the optional rotating log file.
type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
}

// RoomsConfig controls room code issuance and expiry.
type RoomsConfig struct {
	TTL           time.Duration `mapstructure:"ttl" yaml:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval" yaml:"sweep_interval"`
	CodeAlphabet  string        `mapstructure:"code_alphabet" yaml:"code_alphabet"`
	MaxAttempts   int           `mapstructure:"max_attempts" yaml:"max_attempts"`
}

// WSConfig controls per-connection websocket behaviour.
type WSConfig struct {
	SendBuffer         int `mapstructure:"send_buffer" yaml:"send_buffer"`
	MaxEventsPerMinute int `mapstructure:"max_events_per_minute" yaml:"max_events_per_minute"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8000",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
		},
		Rooms: RoomsConfig{
			TTL:           300 * time.Second,
			SweepInterval: 120 * time.Second,
			CodeAlphabet:  "numeric",
			MaxAttempts:   10,
		},
		WS: WSConfig{
			SendBuffer: 64,
		},
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.File != "" {
		c.Log.File = other.Log.File
	}
	if other.Rooms.TTL != 0 {
		c.Rooms.TTL = other.Rooms.TTL
	}
	if other.Rooms.SweepInterval != 0 {
		c.Rooms.SweepInterval = other.Rooms.SweepInterval
	}
	if other.Rooms.CodeAlphabet != "" {
		c.Rooms.CodeAlphabet = other.Rooms.CodeAlphabet
	}
	if other.Rooms.MaxAttempts != 0 {
		c.Rooms.MaxAttempts = other.Rooms.MaxAttempts
	}
	if other.WS.SendBuffer != 0 {
		c.WS.SendBuffer = other.WS.SendBuffer
	}
	if other.WS.MaxEventsPerMinute != 0 {
		c.WS.MaxEventsPerMinute = other.WS.MaxEventsPerMinute
	}
}

// Validate checks all configuration invariants and reports every violation.
func (c Config) Validate() error {
	var errs []string

	if c.Addr == "" {
		errs = append(errs, "addr must not be empty")
	}
	if c.ReadHeaderTimeout < 0 {
		errs = append(errs, "read_header_timeout must not be negative")
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, "shutdown_timeout must be > 0")
	}
	if err := validateLog(c.Log); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateRooms(c.Rooms); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateWS(c.WS); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLog(l LogConfig) error {
	validLevels := map[string]bool{"": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(l.Level)] {
		return fmt.Errorf("log.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	if l.File != "" && l.MaxSizeMB < 1 {
		return fmt.Errorf("log.max_size_mb must be >= 1 when log.file is set, got %d", l.MaxSizeMB)
	}
	if l.MaxBackups < 0 {
		return errors.New("log.max_backups must not be negative")
	}
	return nil
}

func validateRooms(r RoomsConfig) error {
	var errs []string
	if r.TTL <= 0 {
		errs = append(errs, "rooms.ttl must be > 0")
	}
	if r.SweepInterval <= 0 {
		errs = append(errs, "rooms.sweep_interval must be > 0")
	}
	if r.TTL > 0 && r.SweepInterval > 0 && r.TTL <= r.SweepInterval {
		errs = append(errs, fmt.Sprintf("rooms.ttl (%s) must exceed rooms.sweep_interval (%s)", r.TTL, r.SweepInterval))
	}
	validAlphabets := map[string]bool{"numeric": true, "alphanumeric": true}
	if !validAlphabets[r.CodeAlphabet] {
		errs = append(errs, fmt.Sprintf("rooms.code_alphabet must be one of [numeric, alphanumeric], got %q", r.CodeAlphabet))
	}
	if r.MaxAttempts < 1 {
		errs = append(errs, fmt.Sprintf("rooms.max_attempts must be >= 1, got %d", r.MaxAttempts))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateWS(w WSConfig) error {
	var errs []string
	if w.SendBuffer < 1 {
		errs = append(errs, fmt.Sprintf("ws.send_buffer must be >= 1, got %d", w.SendBuffer))
	}
	if w.MaxEventsPerMinute < 0 {
		errs = append(errs, "ws.max_events_per_minute must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
