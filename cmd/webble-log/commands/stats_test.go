package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/26F-Studio/webble/pkg/log"
)

func TestStatsSessionsAndOutcomes(t *testing.T) {
	ts := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	events := append(sessionTrace(ts, "aaaaaaaa-1", "dev-1", true), sessionTrace(ts.Add(time.Second), "bbbbbbbb-2", "dev-1", false)...)
	events = append(events,
		log.Event{Timestamp: ts.Add(2 * time.Second), SessionID: "cccccccc-3", AdapterID: "hci1", Layer: log.LayerSession, Category: log.CategoryState,
			StateChange: &log.StateChangeEvent{Entity: log.StateEntitySession, OldState: "SCANNING", NewState: "TIMED_OUT"}},
		log.Event{Timestamp: ts.Add(2 * time.Second), SessionID: "cccccccc-3", AdapterID: "hci1", Layer: log.LayerAdapter, Category: log.CategoryError,
			Error: &log.ErrorEventData{Layer: log.LayerAdapter, Message: "radio gone", Code: "SCAN_STOP_FAILURE"}},
		log.Event{Timestamp: ts.Add(3 * time.Second), Layer: log.LayerSession, Category: log.CategoryState,
			StateChange: &log.StateChangeEvent{Entity: log.StateEntityManager, OldState: "OPEN", NewState: "CLOSED"}},
	)
	path := createTestLogFile(t, events)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"Total Events: 13",
		"Sessions: 3",
		"MATCHED:     2",
		"TIMED_OUT:   1",
		"[aaaaaaaa] MATCHED, 5 events, adapter hci0, scanned 250.000ms",
		"[cccccccc] TIMED_OUT, 2 events, adapter hci1",
		"Matches: 2 (1 new identities, 1 distinct devices)",
		"SCAN_STOP_FAILURE:",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestStatsIncompleteSession(t *testing.T) {
	ts := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	path := createTestLogFile(t, sessionTrace(ts, "dddddddd-4", "", false)[:2])

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	if !strings.Contains(buf.String(), "[dddddddd] INCOMPLETE") {
		t.Errorf("expected incomplete session, got:\n%s", buf.String())
	}
}

func TestStatsEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "Total Events: 0") {
		t.Errorf("expected zero events, got:\n%s", output)
	}
	if strings.Contains(output, "Time Range") {
		t.Error("time range should be omitted for an empty file")
	}
}
