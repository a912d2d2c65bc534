package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/26F-Studio/webble/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, BackendNative, cfg.Backend)
	assert.Equal(t, session.DefaultTimeout, cfg.DefaultTimeout)
	assert.Equal(t, "auto", cfg.Strategy)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
backend: sim
fixture: testdata/host.yaml
adapter_index: 1
default_timeout: 2s
poll_interval: 50ms
strategy: events
log_level: debug
event_log: /tmp/discovery.blelog
metrics_addr: ":9464"
trace: true
`))
	require.NoError(t, err)

	assert.Equal(t, BackendSim, cfg.Backend)
	assert.Equal(t, "testdata/host.yaml", cfg.Fixture)
	assert.Equal(t, 1, cfg.AdapterIndex)
	assert.Equal(t, 2*time.Second, cfg.DefaultTimeout)
	assert.Equal(t, 50*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, session.DefaultMaxTimeout, cfg.MaxTimeout, "unset keys keep defaults")
	assert.True(t, cfg.Trace)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("adaptor_index: 1\n"))

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "failed to parse YAML", le.Message)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown backend", func(c *Config) { c.Backend = "usb" }, `unknown backend "usb"`},
		{"sim without fixture", func(c *Config) { c.Backend = BackendSim }, "requires a fixture"},
		{"negative index", func(c *Config) { c.AdapterIndex = -1 }, "adapter_index"},
		{"zero timeout", func(c *Config) { c.DefaultTimeout = 0 }, "default_timeout must be positive"},
		{"default above max", func(c *Config) { c.DefaultTimeout = time.Hour }, "exceeds max_timeout"},
		{"zero poll", func(c *Config) { c.PollInterval = 0 }, "poll_interval"},
		{"zero stop", func(c *Config) { c.StopTimeout = 0 }, "stop_timeout"},
		{"bad strategy", func(c *Config) { c.Strategy = "push" }, "unknown strategy"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidateUncappedMax(t *testing.T) {
	cfg := Default()
	cfg.MaxTimeout = 0
	cfg.DefaultTimeout = time.Hour
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webble.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy: poll\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "poll", cfg.Strategy)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrorsCarryFile(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.File, "missing.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("strategy: push\n"), 0o644))
	_, err = Load(bad)
	require.ErrorAs(t, err, &le)
	assert.Equal(t, bad, le.File)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestSession(t *testing.T) {
	cfg := Default()
	cfg.AdapterIndex = 2
	cfg.Strategy = "events"
	cfg.StopTimeout = time.Second

	sc := cfg.Session()
	assert.Equal(t, 2, sc.AdapterIndex)
	assert.Equal(t, session.StrategyEvents, sc.Strategy)
	assert.Equal(t, time.Second, sc.StopTimeout)
	assert.Nil(t, sc.Logger)
}

func TestLoadSample(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "webble.yaml"))
	require.NoError(t, err)
	assert.Equal(t, BackendSim, cfg.Backend)
	assert.Equal(t, ":9464", cfg.MetricsAddr)
	assert.Equal(t, "discovery.blelog", cfg.EventLog)
}
