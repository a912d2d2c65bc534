// Package commands implements the webble-log CLI commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/26F-Studio/webble/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Layer    *log.Layer
	Category *log.Category
}

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session:id] LAYER Type
	ts := event.Timestamp.UTC().Format(timestampLayout)

	var typeLabel string
	switch {
	case event.StateChange != nil:
		typeLabel = "State"
	case event.Scan != nil:
		typeLabel = "Scan " + event.Scan.Command.String()
	case event.Match != nil:
		typeLabel = "Match"
	case event.Error != nil:
		typeLabel = "Error"
	default:
		typeLabel = "Unknown"
	}

	fmt.Fprintf(w, "%s [session:%s] %s %s", ts, shortenID(event.SessionID), event.Layer, typeLabel)
	if event.AdapterID != "" {
		fmt.Fprintf(w, " (%s)", event.AdapterID)
	}
	fmt.Fprintln(w)

	switch {
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Scan != nil:
		formatScanDetails(w, event.Scan)
	case event.Match != nil:
		formatMatchDetails(w, event.DeviceID, event.Match)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenID returns the first 8 characters of a session ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	if id == "" {
		return "-"
	}
	return id
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity)
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatScanDetails(w io.Writer, scan *log.ScanEvent) {
	if scan.Strategy != "" {
		fmt.Fprintf(w, "  Strategy: %s\n", scan.Strategy)
	}
	if len(scan.Services) > 0 {
		fmt.Fprintf(w, "  Services: %s\n", strings.Join(scan.Services, ", "))
	}
	if scan.Elapsed != nil {
		fmt.Fprintf(w, "  Elapsed: %s\n", formatDuration(*scan.Elapsed))
	}
	if scan.Failed {
		fmt.Fprintln(w, "  Failed: adapter rejected the command")
	}
}

func formatMatchDetails(w io.Writer, deviceID string, m *log.MatchEvent) {
	if deviceID != "" {
		label := "known"
		if m.NewIdentity {
			label = "new"
		}
		fmt.Fprintf(w, "  Device: %s (%s)\n", deviceID, label)
	}
	if m.Name != "" {
		fmt.Fprintf(w, "  Name: %s\n", m.Name)
	}
	if len(m.Services) > 0 {
		fmt.Fprintf(w, "  Services: %s\n", strings.Join(m.Services, ", "))
	}
	if m.Inspected > 0 {
		fmt.Fprintf(w, "  Inspected: %d\n", m.Inspected)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer)
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Code != "" {
		fmt.Fprintf(w, "  Code: %s\n", err.Code)
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseLayerFlag parses a layer string from a command-line flag (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "adapter":
		return log.LayerAdapter, nil
	case "session":
		return log.LayerSession, nil
	case "command":
		return log.LayerCommand, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be adapter, session, or command)", s)
	}
}

// ParseCategoryFlag parses a category string from a command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "state":
		return log.CategoryState, nil
	case "scan":
		return log.CategoryScan, nil
	case "match":
		return log.CategoryMatch, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be state, scan, match, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, log.Filter{
		Layer:    filter.Layer,
		Category: filter.Category,
	})
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
