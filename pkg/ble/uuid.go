package ble

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// BaseUUID is the Bluetooth base UUID used to expand assigned numbers.
var BaseUUID = uuid.MustParse("00000000-0000-1000-8000-00805f9b34fb")

// ErrInvalidUUID is returned when a service identifier cannot be resolved.
var ErrInvalidUUID = errors.New("invalid bluetooth uuid")

// UUIDFromUint32 expands a 16- or 32-bit assigned number to its full
// 128-bit form.
func UUIDFromUint32(v uint32) uuid.UUID {
	u := BaseUUID
	binary.BigEndian.PutUint32(u[0:4], v)
	return u
}

// ShortForm returns the assigned number of u if u lies on the base UUID.
func ShortForm(u uuid.UUID) (uint32, bool) {
	if [12]byte(u[4:]) != [12]byte(BaseUUID[4:]) {
		return 0, false
	}
	return binary.BigEndian.Uint32(u[0:4]), true
}

// serviceNames is the subset of the GATT service registry accepted by name.
var serviceNames = map[string]uint32{
	"generic_access":            0x1800,
	"generic_attribute":         0x1801,
	"immediate_alert":           0x1802,
	"link_loss":                 0x1803,
	"tx_power":                  0x1804,
	"current_time":              0x1805,
	"glucose":                   0x1808,
	"health_thermometer":        0x1809,
	"device_information":        0x180a,
	"heart_rate":                0x180d,
	"battery_service":           0x180f,
	"blood_pressure":            0x1810,
	"human_interface_device":    0x1812,
	"running_speed_and_cadence": 0x1814,
	"cycling_speed_and_cadence": 0x1816,
	"cycling_power":             0x1818,
	"location_and_navigation":   0x1819,
	"environmental_sensing":     0x181a,
	"body_composition":          0x181b,
	"user_data":                 0x181c,
	"weight_scale":              0x181d,
	"fitness_machine":           0x1826,
}

// ParseServiceUUID resolves a string service identifier: either a full
// UUID in 8-4-4-4-12 form (case-insensitive) or a GATT registry name.
func ParseServiceUUID(s string) (uuid.UUID, error) {
	if v, ok := serviceNames[s]; ok {
		return UUIDFromUint32(v), nil
	}
	if len(s) != 36 {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidUUID, s)
	}
	u, err := uuid.Parse(strings.ToLower(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidUUID, s)
	}
	return u, nil
}
