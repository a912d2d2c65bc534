package commands

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"sort"
	"time"

	"github.com/26F-Studio/webble/pkg/log"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents      int
	EventsByLayer    map[log.Layer]int
	EventsByCategory map[log.Category]int
	Sessions         map[string]*SessionStats
	Outcomes         map[string]int
	ErrorsByCode     map[string]int
	Matches          int
	NewIdentities    int
	Devices          map[string]int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single discovery session.
type SessionStats struct {
	AdapterID string
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Outcome   string
	ScanTime  time.Duration
}

// terminalStates are the session states that end a scan.
var terminalStates = map[string]bool{
	"MATCHED":   true,
	"TIMED_OUT": true,
	"FAILED":    true,
}

// RunStats analyzes the trace file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByLayer:    make(map[log.Layer]int),
		EventsByCategory: make(map[log.Category]int),
		Sessions:         make(map[string]*SessionStats),
		Outcomes:         make(map[string]int),
		ErrorsByCode:     make(map[string]int),
		Devices:          make(map[string]int),
	}

	for event, err := range reader.All() {
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	switch {
	case event.Match != nil:
		s.Matches++
		if event.Match.NewIdentity {
			s.NewIdentities++
		}
		if event.DeviceID != "" {
			s.Devices[event.DeviceID]++
		}
	case event.Error != nil:
		code := event.Error.Code
		if code == "" {
			code = "UNKNOWN"
		}
		s.ErrorsByCode[code]++
	}

	// Manager lifecycle events carry no session.
	if event.SessionID == "" {
		return
	}
	sess, ok := s.Sessions[event.SessionID]
	if !ok {
		sess = &SessionStats{
			FirstSeen: event.Timestamp,
			LastSeen:  event.Timestamp,
		}
		s.Sessions[event.SessionID] = sess
	}
	sess.Events++
	if event.Timestamp.After(sess.LastSeen) {
		sess.LastSeen = event.Timestamp
	}
	if event.AdapterID != "" && sess.AdapterID == "" {
		sess.AdapterID = event.AdapterID
	}
	if sc := event.StateChange; sc != nil && sc.Entity == log.StateEntitySession && terminalStates[sc.NewState] {
		sess.Outcome = sc.NewState
		s.Outcomes[sc.NewState]++
	}
	if scan := event.Scan; scan != nil && scan.Command == log.ScanStop && scan.Elapsed != nil {
		sess.ScanTime = *scan.Elapsed
	}
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Discovery Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerAdapter, log.LayerSession, log.LayerCommand} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryState, log.CategoryScan, log.CategoryMatch, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	for _, outcome := range []string{"MATCHED", "TIMED_OUT", "FAILED"} {
		if count := stats.Outcomes[outcome]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", outcome+":", count)
		}
	}
	if len(stats.Sessions) > 0 {
		type sessionInfo struct {
			id    string
			stats *SessionStats
		}
		sessions := make([]sessionInfo, 0, len(stats.Sessions))
		for id, ss := range stats.Sessions {
			sessions = append(sessions, sessionInfo{id, ss})
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, s := range sessions {
			outcome := s.stats.Outcome
			if outcome == "" {
				outcome = "INCOMPLETE"
			}
			fmt.Fprintf(w, "  [%s] %s, %d events", shortenID(s.id), outcome, s.stats.Events)
			if s.stats.AdapterID != "" {
				fmt.Fprintf(w, ", adapter %s", s.stats.AdapterID)
			}
			if s.stats.ScanTime > 0 {
				fmt.Fprintf(w, ", scanned %s", formatDuration(s.stats.ScanTime))
			}
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Matches: %d (%d new identities, %d distinct devices)\n",
		stats.Matches, stats.NewIdentities, len(stats.Devices))

	if len(stats.ErrorsByCode) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Errors by Code:")
		for _, code := range slices.Sorted(maps.Keys(stats.ErrorsByCode)) {
			fmt.Fprintf(w, "  %-20s %d\n", code+":", stats.ErrorsByCode[code])
		}
	}
}
