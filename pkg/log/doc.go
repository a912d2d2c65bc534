// Package log provides a structured discovery event trace.
//
// This package defines the Logger interface and Event types for capturing
// what discovery sessions do: state transitions, the scan commands issued
// to adapters, matches and errors. It is separate from operational logging
// (slog). The trace is a complete machine-readable record for debugging
// and analysis.
//
// # Basic Usage
//
// Sessions emit events to the Logger in their configuration:
//
//	// For development: log to console via slog
//	cfg.EventLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.EventLogger, _ = log.NewFileLogger("/var/log/webble/discovery.blelog")
//
//	// Both: use MultiLogger
//	cfg.EventLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are captured at three layers:
//   - Adapter: scan start/stop commands and their outcome (ScanEvent)
//   - Session: state transitions (StateChangeEvent) and matches (MatchEvent)
//   - Command: request dispatch at the IPC boundary
//
// Errors at any layer have a dedicated event type.
//
// # File Format
//
// Log files use CBOR encoding with .blelog extension. The webble-log CLI
// tool provides viewing, filtering, and export capabilities.
package log
