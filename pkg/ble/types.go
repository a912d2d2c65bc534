package ble

import (
	"slices"

	"github.com/google/uuid"
)

// Address is the hardware-level identifier of a peripheral (for example
// its link-layer MAC). It never leaves the discovery core.
type Address string

// String returns the address as text.
func (a Address) String() string {
	return string(a)
}

// Properties is a snapshot of what a peripheral advertised when it was
// last read. Snapshots are immutable; adapters return a fresh one per read.
type Properties struct {
	// LocalName is the advertised local name, nil when not advertised.
	LocalName *string

	// Services lists the advertised service UUIDs.
	Services []uuid.UUID

	// ManufacturerData maps company identifiers to their payloads.
	ManufacturerData map[uint16][]byte

	// ServiceData maps service UUIDs to their payloads.
	ServiceData map[uuid.UUID][]byte

	// TxPowerLevel is the advertised transmit power in dBm, if any.
	TxPowerLevel *int16

	// RSSI is the received signal strength in dBm, if known.
	RSSI *int16
}

// Name returns the advertised local name and whether one was advertised.
func (p *Properties) Name() (string, bool) {
	if p == nil || p.LocalName == nil {
		return "", false
	}
	return *p.LocalName, true
}

// HasService reports whether u is among the advertised services.
func (p *Properties) HasService(u uuid.UUID) bool {
	if p == nil {
		return false
	}
	return slices.Contains(p.Services, u)
}

// ServiceStrings renders the advertised services in canonical form,
// preserving advertisement order.
func (p *Properties) ServiceStrings() []string {
	if p == nil {
		return []string{}
	}
	out := make([]string, 0, len(p.Services))
	for _, u := range p.Services {
		out = append(out, u.String())
	}
	return out
}

// StringPtr returns a pointer to s. Handy for building Properties literals.
func StringPtr(s string) *string {
	return &s
}
