package ble

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDFromUint32(t *testing.T) {
	tests := []struct {
		in   uint32
		want string
	}{
		{0x180d, "0000180d-0000-1000-8000-00805f9b34fb"},
		{0x180f, "0000180f-0000-1000-8000-00805f9b34fb"},
		{0xfeedbeef, "feedbeef-0000-1000-8000-00805f9b34fb"},
		{0, "00000000-0000-1000-8000-00805f9b34fb"},
	}

	for _, tt := range tests {
		got := UUIDFromUint32(tt.in)
		if got.String() != tt.want {
			t.Errorf("UUIDFromUint32(%#x) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestUUIDFromUint32DoesNotMutateBase(t *testing.T) {
	_ = UUIDFromUint32(0x1234)
	assert.Equal(t, "00000000-0000-1000-8000-00805f9b34fb", BaseUUID.String())
}

func TestShortForm(t *testing.T) {
	v, ok := ShortForm(UUIDFromUint32(0x2a37))
	require.True(t, ok)
	assert.Equal(t, uint32(0x2a37), v)

	_, ok = ShortForm(uuid.MustParse("6e400001-b5a3-f393-e0a9-e50e24dcca9e"))
	assert.False(t, ok)
}

func TestParseServiceUUID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"FullLower", "0000180d-0000-1000-8000-00805f9b34fb", "0000180d-0000-1000-8000-00805f9b34fb"},
		{"FullUpper", "6E400001-B5A3-F393-E0A9-E50E24DCCA9E", "6e400001-b5a3-f393-e0a9-e50e24dcca9e"},
		{"RegistryName", "heart_rate", "0000180d-0000-1000-8000-00805f9b34fb"},
		{"BatteryName", "battery_service", "0000180f-0000-1000-8000-00805f9b34fb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseServiceUUID(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseServiceUUIDShortAndFullAgree(t *testing.T) {
	full, err := ParseServiceUUID("0000180f-0000-1000-8000-00805f9b34fb")
	require.NoError(t, err)
	assert.Equal(t, UUIDFromUint32(0x180f), full)
}

func TestParseServiceUUIDInvalid(t *testing.T) {
	for _, in := range []string{"", "180d", "0x180d", "not-a-uuid", "0000180d00001000800000805f9b34fb", "zzzzzzzz-0000-1000-8000-00805f9b34fb"} {
		_, err := ParseServiceUUID(in)
		assert.ErrorIs(t, err, ErrInvalidUUID, "input %q", in)
	}
}
