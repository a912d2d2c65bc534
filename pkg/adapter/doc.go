// Package adapter defines the capability the discovery core needs from a
// native Bluetooth LE stack, and the Selector that picks a hardware adapter
// by index.
//
// A Provider enumerates adapters. An Adapter starts and stops scans and
// lists the peripherals it currently knows. Adapters that can push
// discoveries as they happen also implement EventSource. The discovery
// session is written against these interfaces only and works with either
// style.
//
// Implementations live in sub-packages: native (tinygo.org/x/bluetooth) and
// sim (an in-memory adapter for tests and demos).
package adapter
