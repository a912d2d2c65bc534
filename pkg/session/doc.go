// Package session runs Web-Bluetooth-style device discovery.
//
// A Manager owns the identity cache and serves two operations:
// GetAvailability, which reports whether any adapter is present, and
// RequestDevice, which runs one timed discovery session and returns the
// first peripheral matching the caller's filter as a DeviceInfo.
//
// # Session lifecycle
//
// Each RequestDevice call runs a session through these states:
//
//	Idle ──start scan──▶ Scanning ──first match──▶ Matched
//	  │                     ├──────timeout───────▶ TimedOut
//	  └──start failure──────┴──cancel/shutdown───▶ Failed
//
// Leaving Scanning is a compare-and-swap; whichever of match, timeout,
// cancellation or inspection error wins the swap is the only one to issue
// stop-scan. A deferred guard stops the scan on any other exit path.
//
// # Concurrency
//
// An adapter runs at most one session at a time. A RequestDevice for an
// adapter that is already scanning fails with ble.ErrScanInProgress
// rather than queueing. Sessions on different adapters and availability
// queries proceed independently.
//
// # Candidate inspection
//
// Sessions either poll the adapter's peripheral list or consume its
// discovery events (adapter.EventSource). StrategyAuto picks events when
// the adapter offers them.
package session
