package interactive

import (
	"testing"
	"time"

	"github.com/26F-Studio/webble/pkg/ble"
	"github.com/26F-Studio/webble/pkg/filter"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	heartRate := ble.UUIDFromUint32(0x180d)
	battery := ble.UUIDFromUint32(0x180f)

	t.Run("all", func(t *testing.T) {
		opts, err := parseRequest("all")
		require.NoError(t, err)
		assert.Equal(t, filter.KindAcceptAll, opts.Filter.Kind())
	})

	t.Run("name with spaces", func(t *testing.T) {
		opts, err := parseRequest("name Polar H10")
		require.NoError(t, err)
		clauses := opts.Filter.Clauses()
		require.Len(t, clauses, 1)
		require.NotNil(t, clauses[0].Name)
		assert.Equal(t, "Polar H10", *clauses[0].Name)
	})

	t.Run("prefix with timeout", func(t *testing.T) {
		opts, err := parseRequest("prefix Pix timeout 1500")
		require.NoError(t, err)
		require.NotNil(t, opts.Filter.Clauses()[0].NamePrefix)
		assert.Equal(t, "Pix", *opts.Filter.Clauses()[0].NamePrefix)
		assert.Equal(t, 1500*time.Millisecond, opts.Timeout)
	})

	t.Run("services by name and hex", func(t *testing.T) {
		opts, err := parseRequest("service heart_rate 0x180F")
		require.NoError(t, err)
		clauses := opts.Filter.Clauses()
		require.Len(t, clauses, 2)
		assert.Equal(t, []uuid.UUID{heartRate}, clauses[0].Services)
		assert.Equal(t, []uuid.UUID{battery}, clauses[1].Services)
	})

	t.Run("json", func(t *testing.T) {
		opts, err := parseRequest(`{"filters":[{"services":[6157]}]}`)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{heartRate}, opts.Filter.Clauses()[0].Services)
	})

	for _, bad := range []string{"", "name", "service", "service 0xzz", "color red", "all timeout soon", `{"filters":[]}`} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := parseRequest(bad)
			assert.Error(t, err)
		})
	}
}

func TestFormatProperties(t *testing.T) {
	rssi := int16(-58)
	out := formatProperties(&ble.Properties{
		LocalName:        ble.StringPtr("Pixel"),
		RSSI:             &rssi,
		Services:         []uuid.UUID{ble.UUIDFromUint32(0x180d)},
		ManufacturerData: map[uint16][]byte{0x00e0: {0xbe, 0xef}},
	})

	assert.Contains(t, out, "Name:       Pixel")
	assert.Contains(t, out, "RSSI:       -58 dBm")
	assert.Contains(t, out, "0000180d-0000-1000-8000-00805f9b34fb")
	assert.Contains(t, out, "Mfr 0x00e0: beef")

	assert.Equal(t, "  (no advertisement received)\n", formatProperties(nil))
	assert.Equal(t, "  (empty advertisement)\n", formatProperties(&ble.Properties{}))
}
