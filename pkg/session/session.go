package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/26F-Studio/webble/pkg/adapter"
	"github.com/26F-Studio/webble/pkg/ble"
	"github.com/26F-Studio/webble/pkg/filter"
	"github.com/26F-Studio/webble/pkg/log"
	"github.com/26F-Studio/webble/pkg/metrics"
	"github.com/google/uuid"
)

// DeviceInfo describes the device a session matched.
type DeviceInfo struct {
	// ID is the opaque identifier standing in for the hardware address.
	ID string `json:"id"`

	// Name is the advertised local name, if any.
	Name string `json:"name,omitempty"`

	// Services lists the advertised services in canonical string form.
	Services []string `json:"services"`
}

// match is what a successful inspection hands over.
type match struct {
	peripheral adapter.Peripheral
	props      *ble.Properties
	inspected  int
}

// outcome is delivered exactly once, by whoever ends the scan.
type outcome struct {
	state State
	match *match
	err   error
}

// session is one RequestDevice call against one adapter.
type session struct {
	id      string
	m       *Manager
	adapter adapter.Adapter
	opts    filter.RequestDeviceOptions
	logger  *slog.Logger

	state   atomic.Uint32
	started time.Time
	result  chan outcome

	stopOnce sync.Once
	stopErr  error

	// abort cancels the scan context with a cause.
	abort context.CancelCauseFunc
	done  chan struct{}
}

func newSession(m *Manager, a adapter.Adapter, opts filter.RequestDeviceOptions, abort context.CancelCauseFunc) *session {
	id := uuid.NewString()
	return &session{
		id:      id,
		m:       m,
		adapter: a,
		opts:    opts,
		logger:  m.cfg.Logger.With("session", id, "adapter", a.ID()),
		result:  make(chan outcome, 1),
		abort:   abort,
		done:    make(chan struct{}),
	}
}

// State returns the current state.
func (s *session) State() State {
	return State(s.state.Load())
}

// transition moves from one state to another atomically. Only the caller
// that gets true may act on the new state.
func (s *session) transition(from, to State) bool {
	if !s.state.CompareAndSwap(uint32(from), uint32(to)) {
		return false
	}
	s.emit(log.Event{
		Layer:       log.LayerSession,
		Category:    log.CategoryState,
		StateChange: &log.StateChangeEvent{Entity: log.StateEntitySession, OldState: from.String(), NewState: to.String()},
	})
	return true
}

// finish ends the scan with o if the session is still scanning. The
// winner stops the scan and publishes o; every other caller is a no-op.
func (s *session) finish(o outcome) bool {
	if !s.transition(StateScanning, o.state) {
		return false
	}
	stopErr := s.stop()
	if o.state == StateTimedOut {
		if stopErr != nil {
			o.err = fmt.Errorf("%w: %w", ble.ErrScanStopFailure, stopErr)
		} else {
			o.err = ble.ErrDeviceNotFound
		}
	}
	s.result <- o
	return true
}

// stop issues stop-scan at most once per session. The command runs on a
// context detached from the caller's so cancellation still stops the
// radio.
func (s *session) stop() error {
	s.stopOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.m.cfg.StopTimeout)
		defer cancel()

		err := s.adapter.StopScan(ctx)
		s.stopErr = err
		elapsed := time.Since(s.started)
		s.m.cfg.Metrics.ScanCommand(s.adapter.ID(), "stop", err)
		s.emit(log.Event{
			Layer:    log.LayerAdapter,
			Category: log.CategoryScan,
			Scan:     &log.ScanEvent{Command: log.ScanStop, Elapsed: &elapsed, Failed: err != nil},
		})
		if err != nil {
			s.logger.Warn("stop scan failed", "error", err)
			s.emitError(log.LayerAdapter, "stop scan", fmt.Errorf("%w: %w", ble.ErrScanStopFailure, err))
		} else {
			s.logger.Debug("scan stopped", "elapsed", elapsed)
		}
	})
	return s.stopErr
}

// run drives the session to a terminal state. scanCtx must be the context
// s.abort cancels, and the caller must hold the adapter's scan slot.
func (s *session) run(scanCtx context.Context, timeout time.Duration) (*match, error) {
	defer close(s.done)

	hint := adapter.ScanHint{Services: s.opts.Filter.ServiceHint()}
	strategy := s.m.strategyFor(s.adapter)

	s.started = time.Now()
	err := s.adapter.StartScan(scanCtx, hint)
	s.m.cfg.Metrics.ScanCommand(s.adapter.ID(), "start", err)
	s.emit(log.Event{
		Layer:    log.LayerAdapter,
		Category: log.CategoryScan,
		Scan:     &log.ScanEvent{Command: log.ScanStart, Services: uuidStrings(hint.Services), Strategy: string(strategy), Failed: err != nil},
	})
	if err != nil {
		s.transition(StateIdle, StateFailed)
		err = fmt.Errorf("%w: %w", ble.ErrScanStartFailure, err)
		s.emitError(log.LayerAdapter, "start scan", err)
		s.m.cfg.Metrics.SessionEnded(s.adapter.ID(), metrics.OutcomeFailed)
		return nil, err
	}
	s.transition(StateIdle, StateScanning)
	s.m.cfg.Metrics.ScanStarted()
	s.logger.Debug("scan started", "timeout", timeout, "strategy", strategy, "hint", len(hint.Services))

	defer s.guard()

	timer := time.AfterFunc(timeout, func() {
		s.finish(outcome{state: StateTimedOut})
	})
	defer timer.Stop()

	inspectCtx, stopInspect := context.WithCancel(scanCtx)
	defer stopInspect()
	go s.inspect(inspectCtx, strategy)

	// Abort paths: caller cancellation and manager shutdown. An abort that
	// raced the scan start lands here too.
	go func() {
		select {
		case <-scanCtx.Done():
			s.finish(outcome{state: StateFailed, err: context.Cause(scanCtx)})
		case <-s.done:
		}
	}()

	o := <-s.result
	stopInspect()

	s.m.cfg.Metrics.ScanFinished(s.adapter.ID(), metricOutcome(o.state), time.Since(s.started))
	return o.match, o.err
}

// guard stops a scan still marked as running, covering panics between
// scan start and the outcome.
func (s *session) guard() {
	if s.transition(StateScanning, StateFailed) {
		s.logger.Warn("scan abandoned, stopping")
		s.stop()
	}
}

// inspect runs the candidate strategy and reports its result.
func (s *session) inspect(ctx context.Context, strategy Strategy) {
	defer func() {
		if r := recover(); r != nil {
			s.finish(outcome{state: StateFailed, err: fmt.Errorf("candidate inspection panicked: %v", r)})
		}
	}()

	var (
		found *match
		err   error
	)
	if strategy == StrategyEvents {
		found, err = s.watchEvents(ctx)
	} else {
		found, err = s.poll(ctx)
	}

	switch {
	case found != nil:
		s.finish(outcome{state: StateMatched, match: found})
	case err != nil && ctx.Err() == nil:
		s.emitError(log.LayerAdapter, "list peripherals", err)
		s.finish(outcome{state: StateFailed, err: err})
	}
}

// emit stamps and forwards a trace event.
func (s *session) emit(ev log.Event) {
	ev.Timestamp = time.Now()
	ev.SessionID = s.id
	ev.AdapterID = s.adapter.ID()
	s.m.cfg.EventLogger.Log(ev)
}

func (s *session) emitError(layer log.Layer, op string, err error) {
	s.emit(log.Event{
		Layer:    layer,
		Category: log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:   layer,
			Message: err.Error(),
			Code:    string(ble.CodeOf(err)),
			Context: op,
		},
	})
}

func metricOutcome(s State) string {
	switch s {
	case StateMatched:
		return metrics.OutcomeMatched
	case StateTimedOut:
		return metrics.OutcomeTimedOut
	default:
		return metrics.OutcomeFailed
	}
}

func uuidStrings(us []uuid.UUID) []string {
	if len(us) == 0 {
		return nil
	}
	out := make([]string, len(us))
	for i, u := range us {
		out[i] = u.String()
	}
	return out
}
