// Package ble holds the Bluetooth LE vocabulary shared by the discovery
// core: hardware addresses, advertisement snapshots, service UUIDs and the
// error taxonomy surfaced to callers.
//
// # Service UUIDs
//
// Services are identified by 128-bit UUIDs. Assigned numbers are short
// forms expanded with the Bluetooth base UUID:
//
//	0000xxxx-0000-1000-8000-00805f9b34fb   (16-bit)
//	xxxxxxxx-0000-1000-8000-00805f9b34fb   (32-bit)
//
// Callers may name a service by number, by full UUID string or by its
// GATT registry name (e.g. "heart_rate"). All three resolve to the same
// uuid.UUID, and String() on it yields the canonical lowercase form.
//
// # Errors
//
// Every error returned by the discovery core maps to a stable Code via
// CodeOf, suitable for serialization across a process boundary.
package ble
