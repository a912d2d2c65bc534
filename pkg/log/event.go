package log

import "time"

// Event represents a discovery trace event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the discovery session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// AdapterID is the adapter the session scans with.
	AdapterID string `cbor:"3,keyasint,omitempty"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// DeviceID is the identifier handed out (populated after a match).
	DeviceID string `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	StateChange *StateChangeEvent `cbor:"10,keyasint,omitempty"` // Session state
	Scan        *ScanEvent        `cbor:"11,keyasint,omitempty"` // Adapter scan commands
	Match       *MatchEvent       `cbor:"12,keyasint,omitempty"` // Filter matches
	Error       *ErrorEventData   `cbor:"13,keyasint,omitempty"` // Errors at any layer
}

// Layer indicates which layer captured the event.
type Layer uint8

const (
	// LayerAdapter is the hardware adapter boundary.
	LayerAdapter Layer = 0
	// LayerSession is the discovery session state machine.
	LayerSession Layer = 1
	// LayerCommand is the request dispatch boundary.
	LayerCommand Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerAdapter:
		return "ADAPTER"
	case LayerSession:
		return "SESSION"
	case LayerCommand:
		return "COMMAND"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState indicates a state change.
	CategoryState Category = 0
	// CategoryScan indicates a scan command.
	CategoryScan Category = 1
	// CategoryMatch indicates a peripheral matched the filter.
	CategoryMatch Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategoryScan:
		return "SCAN"
	case CategoryMatch:
		return "MATCH"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures session lifecycle transitions.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntitySession indicates a discovery session state change.
	StateEntitySession StateEntity = 0
	// StateEntityManager indicates a manager lifecycle change.
	StateEntityManager StateEntity = 1
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntitySession:
		return "SESSION"
	case StateEntityManager:
		return "MANAGER"
	default:
		return "UNKNOWN"
	}
}

// ScanEvent captures a scan command sent to an adapter.
type ScanEvent struct {
	// Command issued.
	Command ScanCommand `cbor:"1,keyasint"`

	// Services is the service hint passed with a start command.
	Services []string `cbor:"2,keyasint,omitempty"`

	// Strategy is the candidate inspection strategy (start only).
	Strategy string `cbor:"3,keyasint,omitempty"`

	// Elapsed is the time since the scan started (stop only).
	// Stored as nanoseconds.
	Elapsed *time.Duration `cbor:"4,keyasint,omitempty"`

	// Failed is set when the adapter rejected the command.
	Failed bool `cbor:"5,keyasint,omitempty"`
}

// ScanCommand indicates the type of scan command.
type ScanCommand uint8

const (
	// ScanStart indicates a start-scan command.
	ScanStart ScanCommand = 0
	// ScanStop indicates a stop-scan command.
	ScanStop ScanCommand = 1
)

// String returns the scan command name.
func (c ScanCommand) String() string {
	switch c {
	case ScanStart:
		return "START"
	case ScanStop:
		return "STOP"
	default:
		return "UNKNOWN"
	}
}

// MatchEvent captures the peripheral that satisfied a session's filter.
// The hardware address is deliberately absent.
type MatchEvent struct {
	// Name is the advertised local name, if any.
	Name string `cbor:"1,keyasint,omitempty"`

	// Services lists the advertised services in canonical form.
	Services []string `cbor:"2,keyasint,omitempty"`

	// NewIdentity is set when the device identifier was minted by this match.
	NewIdentity bool `cbor:"3,keyasint,omitempty"`

	// Inspected is the number of candidates evaluated before the match.
	Inspected int `cbor:"4,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the stable error code (if applicable).
	Code string `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}
