package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes discovery events to an slog.Logger.
// Useful for development when you want to see the trace in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}

	// Add optional identifiers
	if event.AdapterID != "" {
		attrs = append(attrs, slog.String("adapter_id", event.AdapterID))
	}
	if event.DeviceID != "" {
		attrs = append(attrs, slog.String("device_id", event.DeviceID))
	}

	// Add type-specific attributes
	switch {
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Scan != nil:
		attrs = append(attrs,
			slog.String("command", event.Scan.Command.String()),
			slog.Bool("failed", event.Scan.Failed),
		)
		if len(event.Scan.Services) > 0 {
			attrs = append(attrs, slog.Any("services", event.Scan.Services))
		}
		if event.Scan.Strategy != "" {
			attrs = append(attrs, slog.String("strategy", event.Scan.Strategy))
		}
		if event.Scan.Elapsed != nil {
			attrs = append(attrs, slog.Duration("elapsed", *event.Scan.Elapsed))
		}
	case event.Match != nil:
		attrs = append(attrs,
			slog.Bool("new_identity", event.Match.NewIdentity),
			slog.Int("inspected", event.Match.Inspected),
		)
		if event.Match.Name != "" {
			attrs = append(attrs, slog.String("name", event.Match.Name))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Code != "" {
			attrs = append(attrs, slog.String("error_code", event.Error.Code))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "discovery", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
