// Command webble runs Web Bluetooth style device discovery against the
// host's Bluetooth adapters or a simulated host.
//
// Usage:
//
//	webble [flags]
//
// Flags:
//
//	-config string        YAML configuration file
//	-backend string       Adapter backend: native, sim (default "native")
//	-fixture string       Simulated host fixture (backend sim)
//	-adapter int          Adapter index to scan with (default 0)
//	-timeout duration     Scan timeout when a request sets none (default 5s)
//	-max-timeout duration Upper bound for request timeouts (default 2m)
//	-poll-interval duration
//	                      Re-enumeration cadence of the poll strategy (default 100ms)
//	-strategy string      Candidate inspection: auto, poll, events (default "auto")
//	-log-level string     Log level: debug, info, warn, error (default "info")
//	-event-log string     Write the discovery trace to this .blelog file
//	-metrics-addr string  Serve Prometheus metrics on this address
//	-trace                Print RequestDevice spans to stderr
//	-request string       Run one request_device call with these JSON options and exit
//	-serve                Answer newline-delimited JSON commands on stdin
//
// Without -request or -serve an interactive shell is started.
//
// Examples:
//
//	# Pick any heart rate monitor
//	webble -request '{"filters":[{"services":["heart_rate"]}]}'
//
//	# Drive a simulated host from another process
//	webble -backend sim -fixture host.yaml -serve
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/26F-Studio/webble/cmd/webble/interactive"
	"github.com/26F-Studio/webble/pkg/adapter"
	"github.com/26F-Studio/webble/pkg/adapter/native"
	"github.com/26F-Studio/webble/pkg/adapter/sim"
	"github.com/26F-Studio/webble/pkg/command"
	"github.com/26F-Studio/webble/pkg/config"
	"github.com/26F-Studio/webble/pkg/log"
	"github.com/26F-Studio/webble/pkg/metrics"
	"github.com/26F-Studio/webble/pkg/session"
)

// shutdownTimeout bounds teardown after the main loop returns.
const shutdownTimeout = 5 * time.Second

var (
	configFile = flag.String("config", "", "YAML configuration file")
	request    = flag.String("request", "", "Run one request_device call with these JSON options and exit")
	serve      = flag.Bool("serve", false, "Answer newline-delimited JSON commands on stdin")
)

// overrides are bound to flags and applied on top of the config file for
// every flag set on the command line.
var overrides = config.Default()

func init() {
	flag.StringVar((*string)(&overrides.Backend), "backend", string(overrides.Backend), "Adapter backend: native, sim")
	flag.StringVar(&overrides.Fixture, "fixture", "", "Simulated host fixture (backend sim)")
	flag.IntVar(&overrides.AdapterIndex, "adapter", overrides.AdapterIndex, "Adapter index to scan with")
	flag.DurationVar(&overrides.DefaultTimeout, "timeout", overrides.DefaultTimeout, "Scan timeout when a request sets none")
	flag.DurationVar(&overrides.MaxTimeout, "max-timeout", overrides.MaxTimeout, "Upper bound for request timeouts")
	flag.DurationVar(&overrides.PollInterval, "poll-interval", overrides.PollInterval, "Re-enumeration cadence of the poll strategy")
	flag.StringVar(&overrides.Strategy, "strategy", overrides.Strategy, "Candidate inspection: auto, poll, events")
	flag.StringVar(&overrides.LogLevel, "log-level", overrides.LogLevel, "Log level: debug, info, warn, error")
	flag.StringVar(&overrides.EventLog, "event-log", "", "Write the discovery trace to this .blelog file")
	flag.StringVar(&overrides.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	flag.BoolVar(&overrides.Trace, "trace", false, "Print RequestDevice spans to stderr")
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "webble: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "webble: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies explicitly set flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return config.Config{}, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = overrides.Backend
		case "fixture":
			cfg.Fixture = overrides.Fixture
		case "adapter":
			cfg.AdapterIndex = overrides.AdapterIndex
		case "timeout":
			cfg.DefaultTimeout = overrides.DefaultTimeout
		case "max-timeout":
			cfg.MaxTimeout = overrides.MaxTimeout
		case "poll-interval":
			cfg.PollInterval = overrides.PollInterval
		case "strategy":
			cfg.Strategy = overrides.Strategy
		case "log-level":
			cfg.LogLevel = overrides.LogLevel
		case "event-log":
			cfg.EventLog = overrides.EventLog
		case "metrics-addr":
			cfg.MetricsAddr = overrides.MetricsAddr
		case "trace":
			cfg.Trace = overrides.Trace
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config.Config) error {
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	provider, err := newProvider(cfg, logger)
	if err != nil {
		return err
	}

	scfg := cfg.Session()
	scfg.Logger = logger
	scfg.Metrics = metrics.New()

	eventLoggers := []log.Logger{log.NewSlogAdapter(logger)}
	if cfg.EventLog != "" {
		fl, err := log.NewFileLogger(cfg.EventLog)
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		defer func() {
			if err := fl.Close(); err != nil {
				logger.Warn("closing event log", "error", err)
			}
		}()
		eventLoggers = append(eventLoggers, fl)
	}
	scfg.EventLogger = log.NewMultiLogger(eventLoggers...)

	var shutdowns []func(context.Context) error
	if cfg.Trace {
		tracer, shutdown, err := initTracer(os.Stderr)
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
		scfg.Tracer = tracer
		shutdowns = append(shutdowns, shutdown)
	}
	if cfg.MetricsAddr != "" {
		shutdown, err := serveMetrics(cfg.MetricsAddr, scfg.Metrics, logger)
		if err != nil {
			return fmt.Errorf("serve metrics: %w", err)
		}
		shutdowns = append(shutdowns, shutdown)
	}

	m := session.NewManager(provider, scfg)
	dispatcher := command.NewDispatcher(m, logger, command.WithEventLogger(scfg.EventLogger))

	var runErr error
	switch {
	case *request != "":
		runErr = runRequest(ctx, dispatcher)
	case *serve:
		runErr = dispatcher.Serve(ctx, os.Stdin, os.Stdout)
		if errors.Is(runErr, context.Canceled) {
			runErr = nil
		}
	default:
		runErr = runInteractive(ctx, m, logger)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := []error{runErr}
	if err := m.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown: %w", err))
	}
	for _, shutdown := range shutdowns {
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown", "error", err)
		}
	}
	return errors.Join(errs...)
}

func newProvider(cfg config.Config, logger *slog.Logger) (adapter.Provider, error) {
	switch cfg.Backend {
	case config.BackendSim:
		f, err := sim.LoadFixture(cfg.Fixture)
		if err != nil {
			return nil, err
		}
		return f.Build()
	default:
		return native.NewProvider(logger), nil
	}
}

// runRequest performs a single request_device call and prints the JSON
// response. A failed request is reported through the exit status.
func runRequest(ctx context.Context, d *command.Dispatcher) error {
	resp := d.Dispatch(ctx, command.Request{
		Command: command.RequestDevice,
		Args:    json.RawMessage(*request),
	})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return err
	}
	if resp.Error != nil {
		return fmt.Errorf("%s: %s", resp.Error.Code, resp.Error.Message)
	}
	return nil
}

func runInteractive(ctx context.Context, m *session.Manager, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	shell, err := interactive.New(m)
	if err != nil {
		return err
	}
	logger.Debug("interactive shell started")
	shell.Run(ctx, cancel)
	return nil
}
