package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateReportsEveryViolation(t *testing.T) {
	cfg := Default()
	cfg.Rooms.TTL = time.Minute
	cfg.Rooms.SweepInterval = time.Minute
	cfg.Rooms.CodeAlphabet = "hex"
	cfg.WS.SendBuffer = 0
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "rooms.ttl (1m0s) must exceed rooms.sweep_interval (1m0s)")
	assert.Contains(t, msg, `rooms.code_alphabet must be one of [numeric, alphanumeric], got "hex"`)
	assert.Contains(t, msg, "ws.send_buffer must be >= 1")
	assert.Contains(t, msg, `log.level must be one of`)
}

func TestValidateRejectsNonPositiveRoomTimings(t *testing.T) {
	cfg := Default()
	cfg.Rooms.TTL = 0
	cfg.Rooms.SweepInterval = -time.Second

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rooms.ttl must be > 0")
	assert.Contains(t, err.Error(), "rooms.sweep_interval must be > 0")
}

func TestUpdateFrom(t *testing.T) {
	cfg := Default()
	cfg.UpdateFrom(Config{
		Addr:  ":9000",
		Rooms: RoomsConfig{CodeAlphabet: "alphanumeric"},
		WS:    WSConfig{MaxEventsPerMinute: 120},
	})

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "alphanumeric", cfg.Rooms.CodeAlphabet)
	assert.Equal(t, 120, cfg.WS.MaxEventsPerMinute)
	assert.Equal(t, 300*time.Second, cfg.Rooms.TTL, "zero values must not overwrite")
}

func TestLoadWritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, resolved, err := Load(nil, path)
	require.NoError(t, err)
	assert.Equal(t, path, resolved)
	assert.Equal(t, Default(), cfg)

	_, err = os.Stat(path)
	require.NoError(t, err, "default config file should be written")
}

func TestLoadReadsFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9100"
log:
  level: DEBUG
rooms:
  ttl: 10m
  code_alphabet: alphanumeric
`), 0o600))
	t.Setenv("ROOMRELAY_ROOMS_SWEEP_INTERVAL", "30s")

	cfg, _, err := Load(nil, path)
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 10*time.Minute, cfg.Rooms.TTL)
	assert.Equal(t, 30*time.Second, cfg.Rooms.SweepInterval)
	assert.Equal(t, "alphanumeric", cfg.Rooms.CodeAlphabet)
	assert.Equal(t, 10, cfg.Rooms.MaxAttempts)
}

func TestLoadValidatedAppliesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, _, err := LoadValidated(nil, path, Config{Addr: ":7000"})
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr)

	_, _, err = LoadValidated(nil, path, Config{Rooms: RoomsConfig{SweepInterval: time.Hour}})
	require.Error(t, err)
}

func TestResolveConfigPathFromEnv(t *testing.T) {
	base := filepath.Join(t.TempDir(), "cfg")
	t.Setenv(envConfigDefaultPath, base)

	assert.Equal(t, filepath.Join(base, defaultConfigName), resolveConfigPath(""))
	assert.Equal(t, "/explicit.yaml", resolveConfigPath("/explicit.yaml"))
}
