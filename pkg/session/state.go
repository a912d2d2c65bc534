package session

// State is a discovery session state.
type State uint32

const (
	// StateIdle - session created, scan not started.
	StateIdle State = iota

	// StateScanning - scan running, candidates being inspected.
	StateScanning

	// StateMatched - a peripheral satisfied the filter.
	StateMatched

	// StateTimedOut - the scan deadline passed without a match.
	StateTimedOut

	// StateFailed - start failure, inspection error, cancellation or
	// shutdown.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateScanning:
		return "SCANNING"
	case StateMatched:
		return "MATCHED"
	case StateTimedOut:
		return "TIMED_OUT"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateMatched || s == StateTimedOut || s == StateFailed
}
