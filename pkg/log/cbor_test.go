package log

import (
	"bytes"
	"testing"
	"time"
)

func TestEventCBORRoundTrip(t *testing.T) {
	ts := time.Date(2026, 3, 2, 10, 15, 32, 123456789, time.UTC)
	elapsed := 1500 * time.Millisecond
	original := Event{
		Timestamp: ts,
		SessionID: "abc12345-def6-7890-abcd-ef1234567890",
		AdapterID: "hci0",
		Layer:     LayerAdapter,
		Category:  CategoryScan,
		Scan: &ScanEvent{
			Command:  ScanStop,
			Elapsed:  &elapsed,
			Failed:   true,
			Strategy: "poll",
		},
	}

	data, err := EncodeEvent(original)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if !decoded.Timestamp.Equal(original.Timestamp) {
		t.Errorf("Timestamp: got %v, want %v", decoded.Timestamp, original.Timestamp)
	}
	if decoded.SessionID != original.SessionID {
		t.Errorf("SessionID: got %q, want %q", decoded.SessionID, original.SessionID)
	}
	if decoded.AdapterID != "hci0" {
		t.Errorf("AdapterID: got %q, want %q", decoded.AdapterID, "hci0")
	}
	if decoded.Layer != LayerAdapter || decoded.Category != CategoryScan {
		t.Errorf("Layer/Category: got %v/%v", decoded.Layer, decoded.Category)
	}
	if decoded.Scan == nil {
		t.Fatal("Scan is nil")
	}
	if decoded.Scan.Command != ScanStop {
		t.Errorf("Command: got %v, want %v", decoded.Scan.Command, ScanStop)
	}
	if decoded.Scan.Elapsed == nil || *decoded.Scan.Elapsed != elapsed {
		t.Errorf("Elapsed: got %v, want %v", decoded.Scan.Elapsed, elapsed)
	}
	if !decoded.Scan.Failed {
		t.Error("Failed: got false, want true")
	}
}

func TestMatchEventCBORRoundTrip(t *testing.T) {
	original := Event{
		Timestamp: time.Now(),
		SessionID: "s-1",
		Layer:     LayerSession,
		Category:  CategoryMatch,
		DeviceID:  "ZGV2aWNl",
		Match: &MatchEvent{
			Name:        "Pixel",
			Services:    []string{"0000180d-0000-1000-8000-00805f9b34fb"},
			NewIdentity: true,
			Inspected:   3,
		},
	}

	data, err := EncodeEvent(original)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if decoded.DeviceID != "ZGV2aWNl" {
		t.Errorf("DeviceID: got %q", decoded.DeviceID)
	}
	if decoded.Match == nil {
		t.Fatal("Match is nil")
	}
	if decoded.Match.Name != "Pixel" || !decoded.Match.NewIdentity || decoded.Match.Inspected != 3 {
		t.Errorf("Match: got %+v", decoded.Match)
	}
	if len(decoded.Match.Services) != 1 {
		t.Errorf("Services: got %v", decoded.Match.Services)
	}
	if decoded.StateChange != nil || decoded.Scan != nil || decoded.Error != nil {
		t.Error("unexpected payloads set")
	}
}

func TestStateAndErrorCBORRoundTrip(t *testing.T) {
	events := []Event{
		{
			Timestamp:   time.Now(),
			SessionID:   "s-1",
			Layer:       LayerSession,
			Category:    CategoryState,
			StateChange: &StateChangeEvent{Entity: StateEntitySession, OldState: "SCANNING", NewState: "TIMED_OUT", Reason: "deadline"},
		},
		{
			Timestamp: time.Now(),
			SessionID: "s-1",
			Layer:     LayerAdapter,
			Category:  CategoryError,
			Error:     &ErrorEventData{Layer: LayerAdapter, Message: "radio gone", Code: "SCAN_STOP_FAILURE", Context: "stop scan"},
		},
	}

	for _, ev := range events {
		data, err := EncodeEvent(ev)
		if err != nil {
			t.Fatalf("EncodeEvent failed: %v", err)
		}
		decoded, err := DecodeEvent(data)
		if err != nil {
			t.Fatalf("DecodeEvent failed: %v", err)
		}
		switch {
		case ev.StateChange != nil:
			if decoded.StateChange == nil || *decoded.StateChange != *ev.StateChange {
				t.Errorf("StateChange: got %+v, want %+v", decoded.StateChange, ev.StateChange)
			}
		case ev.Error != nil:
			if decoded.Error == nil || *decoded.Error != *ev.Error {
				t.Errorf("Error: got %+v, want %+v", decoded.Error, ev.Error)
			}
		}
	}
}

func TestEncodingIsDeterministic(t *testing.T) {
	ev := Event{
		Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		SessionID: "s-1",
		Category:  CategoryScan,
		Scan:      &ScanEvent{Command: ScanStart, Services: []string{"a", "b"}},
	}

	a, err := EncodeEvent(ev)
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncodeEvent(ev)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("encoding is not deterministic")
	}
}

func TestDecodeAll(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, id := range []string{"s-1", "s-2", "s-3"} {
		if err := enc.Encode(Event{Timestamp: time.Now(), SessionID: id}); err != nil {
			t.Fatal(err)
		}
	}

	events, err := DecodeAll(&buf)
	if err != nil {
		t.Fatalf("DecodeAll failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[2].SessionID != "s-3" {
		t.Errorf("last SessionID = %q, want %q", events[2].SessionID, "s-3")
	}
}

func TestDecodeAllTruncated(t *testing.T) {
	data, err := EncodeEvent(Event{Timestamp: time.Now(), SessionID: "s-1"})
	if err != nil {
		t.Fatal(err)
	}
	second, _ := EncodeEvent(Event{Timestamp: time.Now(), SessionID: "s-2"})
	data = append(data, second[:len(second)/2]...)

	events, err := DecodeAll(bytes.NewReader(data))
	if err == nil {
		t.Fatal("expected error for truncated input")
	}
	if len(events) != 1 {
		t.Errorf("got %d events before error, want 1", len(events))
	}
}

func TestDecodeEventInvalid(t *testing.T) {
	if _, err := DecodeEvent([]byte{0xff, 0x00}); err == nil {
		t.Error("expected error for invalid CBOR")
	}
}
