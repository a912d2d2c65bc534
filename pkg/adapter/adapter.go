package adapter

import (
	"context"

	"github.com/26F-Studio/webble/pkg/ble"
	"github.com/google/uuid"
)

// ScanHint lets an adapter narrow a platform scan. Adapters may ignore it;
// the discovery session always applies the full filter itself.
type ScanHint struct {
	// Services, when non-empty, lists services of which at least one is
	// advertised by every peripheral the session could accept.
	Services []uuid.UUID
}

// Provider enumerates the adapters present on the host.
type Provider interface {
	// Adapters lists the adapters currently present. Every call enumerates
	// afresh so hot-plugged radios are reflected. Ordering must be stable
	// while the set of adapters does not change.
	Adapters(ctx context.Context) ([]Adapter, error)
}

// Adapter is one hardware radio.
type Adapter interface {
	// ID returns a stable identifier (e.g. "hci0").
	ID() string

	// StartScan begins discovering peripherals.
	StartScan(ctx context.Context, hint ScanHint) error

	// StopScan ends a scan started by StartScan.
	StopScan(ctx context.Context) error

	// Peripherals lists the peripherals discovered so far.
	Peripherals(ctx context.Context) ([]Peripheral, error)
}

// EventSource is implemented by adapters that push discoveries.
type EventSource interface {
	// Events returns a channel of discovery events. The channel is closed
	// when ctx is done. Slow consumers may miss events; the session does
	// an initial sweep of Peripherals to cover anything already known.
	Events(ctx context.Context) (<-chan Event, error)
}

// EventType classifies discovery events.
type EventType uint8

const (
	// EventDiscovered reports a peripheral seen for the first time.
	EventDiscovered EventType = iota

	// EventUpdated reports a new advertisement from a known peripheral.
	EventUpdated
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventDiscovered:
		return "DISCOVERED"
	case EventUpdated:
		return "UPDATED"
	default:
		return "UNKNOWN"
	}
}

// Event is one discovery notification.
type Event struct {
	Type       EventType
	Peripheral Peripheral
}

// Peripheral is a remote device seen during a scan.
type Peripheral interface {
	// Address returns the hardware address.
	Address() ble.Address

	// Properties reads the latest advertisement snapshot. It returns
	// nil, nil when nothing has been received from the peripheral yet.
	Properties(ctx context.Context) (*ble.Properties, error)
}
