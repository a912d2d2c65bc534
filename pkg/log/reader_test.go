package log

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.blelog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func readAll(t *testing.T, r *Reader) []Event {
	t.Helper()
	var read []Event
	for {
		event, err := r.Next()
		if err == io.EOF {
			return read
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}
}

func TestReaderIteratesEvents(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), SessionID: "s-1", Layer: LayerSession, Category: CategoryState},
		{Timestamp: time.Now(), SessionID: "s-2", Layer: LayerAdapter, Category: CategoryScan},
		{Timestamp: time.Now(), SessionID: "s-3", Layer: LayerSession, Category: CategoryMatch},
	}
	path := createTestLogFile(t, events)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)
	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}
	if read[0].SessionID != "s-1" {
		t.Errorf("first event SessionID = %q, want %q", read[0].SessionID, "s-1")
	}
	if read[2].SessionID != "s-3" {
		t.Errorf("last event SessionID = %q, want %q", read[2].SessionID, "s-3")
	}
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	event, err := reader.Next()
	if err != io.EOF {
		t.Errorf("expected io.EOF, got err=%v, event=%+v", err, event)
	}
}

func TestReaderHandlesTruncatedFile(t *testing.T) {
	path := createTestLogFile(t, []Event{
		{Timestamp: time.Now(), SessionID: "s-1"},
		{Timestamp: time.Now(), SessionID: "s-2"},
	})

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Truncate(path, info.Size()-3); err != nil {
		t.Fatal(err)
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if _, err := reader.Next(); err != nil {
		t.Fatalf("first event: %v", err)
	}
	if _, err := reader.Next(); err == nil || err == io.EOF {
		t.Errorf("expected decode error for truncated event, got %v", err)
	}
}

func TestReaderFilters(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	events := []Event{
		{Timestamp: base, SessionID: "s-1", AdapterID: "hci0", Layer: LayerSession, Category: CategoryState},
		{Timestamp: base.Add(time.Second), SessionID: "s-1", AdapterID: "hci0", Layer: LayerAdapter, Category: CategoryScan},
		{Timestamp: base.Add(2 * time.Second), SessionID: "s-2", AdapterID: "hci1", Layer: LayerSession, Category: CategoryMatch, DeviceID: "dev-1"},
		{Timestamp: base.Add(3 * time.Second), SessionID: "s-2", AdapterID: "hci1", Layer: LayerAdapter, Category: CategoryError},
	}
	path := createTestLogFile(t, events)

	layer := LayerAdapter
	category := CategoryMatch
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"none", Filter{}, 4},
		{"session", Filter{SessionID: "s-1"}, 2},
		{"adapter", Filter{AdapterID: "hci1"}, 2},
		{"layer", Filter{Layer: &layer}, 2},
		{"category", Filter{Category: &category}, 1},
		{"device", Filter{DeviceID: "dev-1"}, 1},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, 2},
		{"combined", Filter{SessionID: "s-2", Layer: &layer}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader failed: %v", err)
			}
			defer reader.Close()

			if got := len(readAll(t, reader)); got != tt.want {
				t.Errorf("got %d events, want %d", got, tt.want)
			}
		})
	}
}

func TestReaderAll(t *testing.T) {
	path := createTestLogFile(t, []Event{
		{Timestamp: time.Now(), SessionID: "s-1"},
		{Timestamp: time.Now(), SessionID: "s-2"},
		{Timestamp: time.Now(), SessionID: "s-3"},
	})

	reader, err := NewReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()

	var ids []string
	for ev, err := range reader.All() {
		if err != nil {
			t.Fatalf("All: %v", err)
		}
		ids = append(ids, ev.SessionID)
		if len(ids) == 2 {
			break
		}
	}
	if len(ids) != 2 || ids[1] != "s-2" {
		t.Errorf("got %v", ids)
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "missing.blelog")); err == nil {
		t.Error("expected error for missing file")
	}
}
