package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/26F-Studio/webble/pkg/adapter"
	"github.com/26F-Studio/webble/pkg/ble"
	"github.com/26F-Studio/webble/pkg/filter"
	"github.com/26F-Studio/webble/pkg/identity"
	"github.com/26F-Studio/webble/pkg/log"
	"github.com/26F-Studio/webble/pkg/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/26F-Studio/webble/pkg/session"

// Manager serves discovery requests. It is safe for concurrent use.
type Manager struct {
	cfg      Config
	selector *adapter.Selector
	cache    *identity.Cache[adapter.Peripheral]
	tracer   trace.Tracer

	mu     sync.Mutex
	active map[string]*session // by adapter ID
	closed bool
}

// NewManager creates a manager over the adapters of provider.
func NewManager(provider adapter.Provider, cfg Config) *Manager {
	cfg = cfg.withDefaults()
	m := &Manager{
		cfg:      cfg,
		selector: adapter.NewSelector(provider),
		active:   make(map[string]*session),
		tracer:   cfg.Tracer,
	}
	if m.tracer == nil {
		m.tracer = otel.Tracer(tracerName)
	}
	m.cache = identity.New[adapter.Peripheral](identity.WithInsertHook(cfg.Metrics.IdentityCacheSize))
	return m
}

// GetAvailability reports whether any adapter is present. It never scans.
func (m *Manager) GetAvailability(ctx context.Context) (bool, error) {
	ok, err := m.selector.Available(ctx)
	m.cfg.Metrics.AvailabilityQueried(ok, err)
	if err != nil {
		m.cfg.Logger.Warn("availability query failed", "error", err)
	}
	return ok, err
}

// RequestDevice scans for the first peripheral matching opts and returns
// its description. It blocks until a match, the timeout, cancellation of
// ctx, or Shutdown.
//
// Errors: ble.ErrInvalidOptions before any hardware is touched,
// ble.ErrNoAdapter, ble.ErrScanInProgress when the adapter is busy,
// ble.ErrScanStartFailure, ble.ErrDeviceNotFound on timeout (or
// ble.ErrScanStopFailure when the timed-out scan cannot be stopped),
// ble.ErrClosed after Shutdown, and the cause of ctx on cancellation.
// Peripheral listing errors from the adapter are returned unchanged.
func (m *Manager) RequestDevice(ctx context.Context, opts filter.RequestDeviceOptions) (info *DeviceInfo, err error) {
	ctx, span := m.tracer.Start(ctx, "RequestDevice", trace.WithAttributes(
		attribute.String("webble.filter.kind", opts.Filter.Kind().String()),
		attribute.Int("webble.adapter.index", m.cfg.AdapterIndex),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(ble.CodeOf(err)))
		} else if info != nil {
			span.SetAttributes(attribute.String("webble.device.id", info.ID))
		}
		span.End()
	}()

	if m.isClosed() {
		return nil, ble.ErrClosed
	}
	if err := opts.Validate(); err != nil {
		m.cfg.Logger.Debug("rejecting request", "error", err)
		return nil, err
	}

	a, err := m.selector.Select(ctx, m.cfg.AdapterIndex)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("webble.adapter.id", a.ID()))

	scanCtx, abort := context.WithCancelCause(ctx)
	defer abort(nil)

	s := newSession(m, a, opts, abort)
	if err := m.acquire(s); err != nil {
		m.cfg.Metrics.SessionEnded(a.ID(), metrics.OutcomeRejected)
		return nil, err
	}
	defer m.release(s)

	timeout := m.cfg.timeoutFor(opts.Timeout)
	span.SetAttributes(attribute.Int64("webble.timeout_ms", timeout.Milliseconds()))

	found, err := s.run(scanCtx, timeout)
	span.SetAttributes(attribute.String("webble.session.state", s.State().String()))
	if err != nil {
		return nil, err
	}
	return m.resolve(s, found)
}

// resolve binds the matched peripheral to an identifier.
func (m *Manager) resolve(s *session, found *match) (*DeviceInfo, error) {
	addr := found.peripheral.Address()
	_, known := m.cache.IDFor(addr)
	id, err := m.cache.ResolveOrInsert(addr, found.peripheral)
	if err != nil {
		return nil, fmt.Errorf("assign device id: %w", err)
	}

	info := &DeviceInfo{
		ID:       id.String(),
		Services: found.props.ServiceStrings(),
	}
	if name, ok := found.props.Name(); ok {
		info.Name = name
	}

	s.emit(log.Event{
		Layer:    log.LayerSession,
		Category: log.CategoryMatch,
		DeviceID: info.ID,
		Match: &log.MatchEvent{
			Name:        info.Name,
			Services:    info.Services,
			NewIdentity: !known,
			Inspected:   found.inspected,
		},
	})
	s.logger.Info("device matched", "device", info.ID, "name", info.Name, "new", !known)
	return info, nil
}

// Device returns the peripheral handle behind a previously returned
// identifier.
func (m *Manager) Device(id string) (adapter.Peripheral, bool) {
	return m.cache.Lookup(identity.DeviceID(id))
}

// KnownDevices returns the number of identifiers handed out so far.
func (m *Manager) KnownDevices() int {
	return m.cache.Len()
}

// ActiveScans returns the number of sessions currently holding an adapter.
func (m *Manager) ActiveScans() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

// Shutdown aborts every active session and waits for each to stop its
// scan. Stop-scan failures are joined into the returned error. After
// Shutdown, RequestDevice fails with ble.ErrClosed. Shutdown may be
// called more than once.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if !m.closed {
		m.closed = true
		m.cfg.EventLogger.Log(log.Event{
			Timestamp:   time.Now(),
			Layer:       log.LayerSession,
			Category:    log.CategoryState,
			StateChange: &log.StateChangeEvent{Entity: log.StateEntityManager, OldState: "OPEN", NewState: "CLOSED"},
		})
	}
	sessions := make([]*session, 0, len(m.active))
	for _, s := range m.active {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	if len(sessions) > 0 {
		m.cfg.Logger.Info("shutting down, aborting active scans", "count", len(sessions))
	}

	errs := make([]error, len(sessions))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range sessions {
		g.Go(func() error {
			s.abort(ble.ErrClosed)
			select {
			case <-s.done:
			case <-gctx.Done():
				return gctx.Err()
			}
			if s.stopErr != nil {
				errs[i] = fmt.Errorf("%w: adapter %s: %w", ble.ErrScanStopFailure, s.adapter.ID(), s.stopErr)
			}
			return nil
		})
	}
	waitErr := g.Wait()
	return errors.Join(append(errs, waitErr)...)
}

func (m *Manager) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// acquire claims the adapter's scan slot for s.
func (m *Manager) acquire(s *session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ble.ErrClosed
	}
	id := s.adapter.ID()
	if _, busy := m.active[id]; busy {
		return fmt.Errorf("%w: %s", ble.ErrScanInProgress, id)
	}
	m.active[id] = s
	return nil
}

func (m *Manager) release(s *session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active[s.adapter.ID()] == s {
		delete(m.active, s.adapter.ID())
	}
}

// strategyFor resolves the configured strategy against a's capabilities.
func (m *Manager) strategyFor(a adapter.Adapter) Strategy {
	switch m.cfg.Strategy {
	case StrategyPoll:
		return StrategyPoll
	case StrategyEvents:
		return StrategyEvents
	}
	if _, ok := a.(adapter.EventSource); ok {
		return StrategyEvents
	}
	return StrategyPoll
}
