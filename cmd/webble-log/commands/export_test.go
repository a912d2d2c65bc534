package commands

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/26F-Studio/webble/pkg/log"
)

func TestExportToJSONL(t *testing.T) {
	ts := time.Date(2026, 3, 2, 10, 15, 32, 0, time.UTC)
	path := createTestLogFile(t, sessionTrace(ts, "s-1", "ZGV2aWNl", true))
	outPath := filepath.Join(t.TempDir(), "out.jsonl")

	if err := RunExport(path, "jsonl", outPath); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}

	var last log.Event
	if err := json.Unmarshal([]byte(lines[4]), &last); err != nil {
		t.Fatalf("invalid JSON line: %v", err)
	}
	if last.DeviceID != "ZGV2aWNl" || last.Match == nil || last.Match.Name != "Polar H10" {
		t.Errorf("unexpected last event: %+v", last)
	}
}

func TestExportToCSV(t *testing.T) {
	ts := time.Date(2026, 3, 2, 10, 15, 32, 0, time.UTC)
	events := append(sessionTrace(ts, "s-1", "ZGV2aWNl", true), log.Event{
		Timestamp: ts,
		SessionID: "s-2",
		Layer:     log.LayerAdapter,
		Category:  log.CategoryError,
		Error:     &log.ErrorEventData{Message: "radio gone", Code: "SCAN_START_FAILURE"},
	})
	path := createTestLogFile(t, events)
	outPath := filepath.Join(t.TempDir(), "out.csv")

	if err := RunExport(path, "csv", outPath); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}

	if len(records) != 7 {
		t.Fatalf("expected header + 6 rows, got %d", len(records))
	}
	if records[0][0] != "timestamp" || records[0][7] != "detail" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][6] != "scan_start" {
		t.Errorf("row 1 type = %q, want scan_start", records[1][6])
	}
	if records[3][6] != "state" || records[3][7] != "MATCHED" {
		t.Errorf("row 3 = %v", records[3])
	}
	if records[6][6] != "error" || records[6][7] != "SCAN_START_FAILURE" {
		t.Errorf("row 6 = %v", records[6])
	}
}

func TestExportUnknownFormat(t *testing.T) {
	path := createTestLogFile(t, nil)
	if err := RunExport(path, "xml", filepath.Join(t.TempDir(), "out")); err == nil {
		t.Error("expected error for unknown format")
	}
}
