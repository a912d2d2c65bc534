package log

import (
	"testing"
	"time"
)

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	logger := NoopLogger{}

	event := Event{
		Timestamp: time.Now(),
		SessionID: "test-session",
		Layer:     LayerSession,
		Category:  CategoryState,
	}
	logger.Log(event)

	event.StateChange = &StateChangeEvent{Entity: StateEntitySession, NewState: "SCANNING"}
	logger.Log(event)

	event.StateChange = nil
	event.Scan = &ScanEvent{Command: ScanStart}
	logger.Log(event)

	event.Scan = nil
	event.Match = &MatchEvent{Name: "Pixel"}
	logger.Log(event)

	event.Match = nil
	event.Error = &ErrorEventData{Message: "test error"}
	logger.Log(event)
}

func TestNoopLoggerIsZeroValue(t *testing.T) {
	var logger NoopLogger
	logger.Log(Event{})
}

// recorder records events for testing
type recorder struct {
	events []Event
}

func (r *recorder) Log(event Event) {
	r.events = append(r.events, event)
}

func TestMultiLoggerCallsAll(t *testing.T) {
	r1 := &recorder{}
	r2 := &recorder{}

	multi := NewMultiLogger(r1, r2)
	multi.Log(Event{Timestamp: time.Now(), SessionID: "s-123"})

	for i, r := range []*recorder{r1, r2} {
		if len(r.events) != 1 {
			t.Errorf("logger %d: got %d events, want 1", i, len(r.events))
			continue
		}
		if r.events[0].SessionID != "s-123" {
			t.Errorf("logger %d: SessionID = %q, want %q", i, r.events[0].SessionID, "s-123")
		}
	}
}

func TestMultiLoggerSkipsNil(t *testing.T) {
	r := &recorder{}
	multi := NewMultiLogger(nil, r, nil)

	if multi.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", multi.Len())
	}
	multi.Log(Event{SessionID: "s-1"})
	if len(r.events) != 1 {
		t.Errorf("got %d events, want 1", len(r.events))
	}
}

func TestMultiLoggerEmptyList(t *testing.T) {
	// Should not panic with empty logger list
	NewMultiLogger().Log(Event{Timestamp: time.Now(), SessionID: "s-1"})
}
