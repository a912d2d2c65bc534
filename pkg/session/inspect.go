package session

import (
	"context"
	"time"

	"github.com/26F-Studio/webble/pkg/adapter"
	"github.com/26F-Studio/webble/pkg/filter"
)

// sweep evaluates every peripheral the adapter currently knows. A failed
// listing ends the session; a failed property read only skips that
// peripheral.
func (s *session) sweep(ctx context.Context, inspected *int) (*match, error) {
	peripherals, err := s.adapter.Peripherals(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range peripherals {
		if ctx.Err() != nil {
			return nil, nil
		}
		if m := s.evaluate(ctx, p, inspected); m != nil {
			return m, nil
		}
	}
	return nil, nil
}

// evaluate reads p's advertisement and applies the filter.
func (s *session) evaluate(ctx context.Context, p adapter.Peripheral, inspected *int) *match {
	props, err := p.Properties(ctx)
	if err != nil {
		s.logger.Debug("skipping peripheral, properties unreadable", "error", err)
		return nil
	}
	*inspected++
	if !filter.Matches(props, s.opts.Filter) {
		return nil
	}
	return &match{peripheral: p, props: props, inspected: *inspected}
}

// poll re-enumerates the adapter immediately and then every PollInterval.
func (s *session) poll(ctx context.Context) (*match, error) {
	ticker := time.NewTicker(s.m.cfg.PollInterval)
	defer ticker.Stop()

	inspected := 0
	for {
		m, err := s.sweep(ctx, &inspected)
		if m != nil || err != nil {
			return m, err
		}
		select {
		case <-ctx.Done():
			return nil, nil
		case <-ticker.C:
		}
	}
}

// watchEvents subscribes to discovery events, sweeps once for peripherals
// found before the subscription, then evaluates each event. Feeds drop
// events for slow subscribers, so the adapter is also re-swept every
// PollInterval. If the adapter cannot deliver events the session falls
// back to polling.
func (s *session) watchEvents(ctx context.Context) (*match, error) {
	es, ok := s.adapter.(adapter.EventSource)
	if !ok {
		return s.poll(ctx)
	}
	events, err := es.Events(ctx)
	if err != nil {
		s.logger.Warn("event subscription failed, polling instead", "error", err)
		return s.poll(ctx)
	}

	inspected := 0
	if m, err := s.sweep(ctx, &inspected); m != nil || err != nil {
		return m, err
	}

	ticker := time.NewTicker(s.m.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, nil
		case <-ticker.C:
			if m, err := s.sweep(ctx, &inspected); m != nil || err != nil {
				return m, err
			}
		case ev, ok := <-events:
			if !ok {
				if ctx.Err() != nil {
					return nil, nil
				}
				s.logger.Warn("event feed closed early, polling instead")
				return s.poll(ctx)
			}
			if ev.Peripheral == nil {
				continue
			}
			if m := s.evaluate(ctx, ev.Peripheral, &inspected); m != nil {
				return m, nil
			}
		}
	}
}
