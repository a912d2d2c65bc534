package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/26F-Studio/webble/pkg/log"
)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test"+log.FileExtension)

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("failed to close logger: %v", err)
	}
	return path
}

// sessionTrace is the event sequence of one matched session.
func sessionTrace(ts time.Time, sessionID, deviceID string, newIdentity bool) []log.Event {
	elapsed := 250 * time.Millisecond
	return []log.Event{
		{Timestamp: ts, SessionID: sessionID, AdapterID: "hci0", Layer: log.LayerAdapter, Category: log.CategoryScan,
			Scan: &log.ScanEvent{Command: log.ScanStart, Strategy: "events", Services: []string{"0000180d-0000-1000-8000-00805f9b34fb"}}},
		{Timestamp: ts, SessionID: sessionID, AdapterID: "hci0", Layer: log.LayerSession, Category: log.CategoryState,
			StateChange: &log.StateChangeEvent{Entity: log.StateEntitySession, OldState: "IDLE", NewState: "SCANNING"}},
		{Timestamp: ts.Add(elapsed), SessionID: sessionID, AdapterID: "hci0", Layer: log.LayerSession, Category: log.CategoryState,
			StateChange: &log.StateChangeEvent{Entity: log.StateEntitySession, OldState: "SCANNING", NewState: "MATCHED"}},
		{Timestamp: ts.Add(elapsed), SessionID: sessionID, AdapterID: "hci0", Layer: log.LayerAdapter, Category: log.CategoryScan,
			Scan: &log.ScanEvent{Command: log.ScanStop, Elapsed: &elapsed}},
		{Timestamp: ts.Add(elapsed), SessionID: sessionID, AdapterID: "hci0", Layer: log.LayerSession, Category: log.CategoryMatch,
			DeviceID: deviceID, Match: &log.MatchEvent{Name: "Polar H10", NewIdentity: newIdentity, Inspected: 4}},
	}
}
