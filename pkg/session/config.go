package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/26F-Studio/webble/pkg/log"
	"github.com/26F-Studio/webble/pkg/metrics"
	"go.opentelemetry.io/otel/trace"
)

// Default timing values.
const (
	// DefaultTimeout bounds a scan when the request names no timeout.
	DefaultTimeout = 5 * time.Second

	// DefaultMaxTimeout caps caller-supplied timeouts.
	DefaultMaxTimeout = 2 * time.Minute

	// DefaultPollInterval is the re-enumeration cadence of the poll strategy.
	DefaultPollInterval = 100 * time.Millisecond

	// DefaultStopTimeout bounds a single stop-scan command.
	DefaultStopTimeout = 2 * time.Second
)

// Strategy selects how a session inspects candidates.
type Strategy string

const (
	// StrategyAuto uses events when the adapter implements
	// adapter.EventSource and polls otherwise.
	StrategyAuto Strategy = "auto"

	// StrategyPoll re-enumerates the adapter's peripherals on a cadence.
	StrategyPoll Strategy = "poll"

	// StrategyEvents consumes the adapter's discovery events.
	StrategyEvents Strategy = "events"
)

// ParseStrategy parses a strategy name. The empty string is StrategyAuto.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyAuto:
		return StrategyAuto, nil
	case StrategyPoll, StrategyEvents:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown strategy %q", s)
	}
}

// Config configures a Manager.
type Config struct {
	// AdapterIndex selects the adapter every session scans with.
	// Default: 0.
	AdapterIndex int

	// DefaultTimeout applies when a request sets no timeout.
	// Default: 5 seconds.
	DefaultTimeout time.Duration

	// MaxTimeout caps request timeouts. Zero disables the cap.
	// Default: 2 minutes.
	MaxTimeout time.Duration

	// PollInterval is the poll strategy's cadence.
	// Default: 100 milliseconds.
	PollInterval time.Duration

	// StopTimeout bounds each stop-scan command.
	// Default: 2 seconds.
	StopTimeout time.Duration

	// Strategy selects candidate inspection.
	// Default: StrategyAuto.
	Strategy Strategy

	// Logger is used for operational logging. Nil discards.
	Logger *slog.Logger

	// EventLogger receives the discovery event trace. Nil disables it.
	EventLogger log.Logger

	// Metrics records discovery metrics. Nil disables them.
	Metrics *metrics.Metrics

	// Tracer creates a span per RequestDevice. Nil uses the global
	// OpenTelemetry tracer provider.
	Tracer trace.Tracer
}

// DefaultConfig returns the default manager configuration.
func DefaultConfig() Config {
	return Config{
		AdapterIndex:   0,
		DefaultTimeout: DefaultTimeout,
		MaxTimeout:     DefaultMaxTimeout,
		PollInterval:   DefaultPollInterval,
		StopTimeout:    DefaultStopTimeout,
		Strategy:       StrategyAuto,
	}
}

// withDefaults fills zero fields.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DefaultTimeout <= 0 {
		c.DefaultTimeout = d.DefaultTimeout
	}
	if c.PollInterval <= 0 {
		c.PollInterval = d.PollInterval
	}
	if c.StopTimeout <= 0 {
		c.StopTimeout = d.StopTimeout
	}
	if c.Strategy == "" {
		c.Strategy = d.Strategy
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	if c.EventLogger == nil {
		c.EventLogger = log.NoopLogger{}
	}
	return c
}

// timeoutFor resolves the effective scan timeout of a request.
func (c Config) timeoutFor(requested time.Duration) time.Duration {
	t := requested
	if t <= 0 {
		t = c.DefaultTimeout
	}
	if c.MaxTimeout > 0 && t > c.MaxTimeout {
		t = c.MaxTimeout
	}
	return t
}
