// Package config loads the webble command configuration from YAML.
//
// A file provides the base values and command-line flags override them.
// Unknown keys are rejected so typos do not silently fall back to defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/26F-Studio/webble/pkg/session"
	"gopkg.in/yaml.v3"
)

// Backend selects where adapters come from.
type Backend string

const (
	// BackendNative uses the host's Bluetooth stack.
	BackendNative Backend = "native"

	// BackendSim uses simulated adapters loaded from a fixture file.
	BackendSim Backend = "sim"
)

// Config is the full command configuration.
type Config struct {
	Backend        Backend       `yaml:"backend"`
	Fixture        string        `yaml:"fixture,omitempty"`
	AdapterIndex   int           `yaml:"adapter_index"`
	DefaultTimeout time.Duration `yaml:"default_timeout"`
	MaxTimeout     time.Duration `yaml:"max_timeout"`
	PollInterval   time.Duration `yaml:"poll_interval"`
	StopTimeout    time.Duration `yaml:"stop_timeout"`
	Strategy       string        `yaml:"strategy"`
	LogLevel       string        `yaml:"log_level"`

	// EventLog is the .blelog path for the discovery trace. Empty disables it.
	EventLog string `yaml:"event_log,omitempty"`

	// MetricsAddr serves Prometheus metrics when set (e.g. ":9464").
	MetricsAddr string `yaml:"metrics_addr,omitempty"`

	// Trace exports RequestDevice spans to stdout.
	Trace bool `yaml:"trace,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	d := session.DefaultConfig()
	return Config{
		Backend:        BackendNative,
		AdapterIndex:   d.AdapterIndex,
		DefaultTimeout: d.DefaultTimeout,
		MaxTimeout:     d.MaxTimeout,
		PollInterval:   d.PollInterval,
		StopTimeout:    d.StopTimeout,
		Strategy:       string(d.Strategy),
		LogLevel:       "info",
	}
}

// LoadError reports a configuration file that could not be used.
type LoadError struct {
	File    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, &LoadError{Message: "failed to parse YAML", Cause: err}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, &LoadError{Message: "invalid configuration", Cause: err}
	}
	return cfg, nil
}

// Load reads and parses a configuration file. An empty path yields the
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}
	cfg, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
		}
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values and their combinations.
func (c Config) Validate() error {
	var errs []error

	switch c.Backend {
	case BackendNative:
	case BackendSim:
		if c.Fixture == "" {
			errs = append(errs, errors.New("backend sim requires a fixture"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}

	if c.AdapterIndex < 0 {
		errs = append(errs, fmt.Errorf("adapter_index must not be negative, got %d", c.AdapterIndex))
	}
	if c.DefaultTimeout <= 0 {
		errs = append(errs, errors.New("default_timeout must be positive"))
	}
	if c.MaxTimeout < 0 {
		errs = append(errs, errors.New("max_timeout must not be negative"))
	}
	if c.MaxTimeout > 0 && c.DefaultTimeout > c.MaxTimeout {
		errs = append(errs, fmt.Errorf("default_timeout %s exceeds max_timeout %s", c.DefaultTimeout, c.MaxTimeout))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, errors.New("poll_interval must be positive"))
	}
	if c.StopTimeout <= 0 {
		errs = append(errs, errors.New("stop_timeout must be positive"))
	}
	if _, err := session.ParseStrategy(c.Strategy); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// Session builds the manager configuration. Collaborators (loggers,
// metrics, tracer) are left for the caller to fill.
func (c Config) Session() session.Config {
	strategy, err := session.ParseStrategy(c.Strategy)
	if err != nil {
		strategy = session.StrategyAuto
	}
	return session.Config{
		AdapterIndex:   c.AdapterIndex,
		DefaultTimeout: c.DefaultTimeout,
		MaxTimeout:     c.MaxTimeout,
		PollInterval:   c.PollInterval,
		StopTimeout:    c.StopTimeout,
		Strategy:       strategy,
	}
}
