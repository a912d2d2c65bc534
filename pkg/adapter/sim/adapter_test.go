package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/26F-Studio/webble/pkg/adapter"
	"github.com/26F-Studio/webble/pkg/ble"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pixel() Device {
	return Device{
		Address:    "AA:BB:CC:DD:EE:01",
		Properties: &ble.Properties{LocalName: ble.StringPtr("Pixel")},
	}
}

func TestPeripheralsEmptyBeforeScan(t *testing.T) {
	a := NewAdapter("hci0", pixel())

	got, err := a.Peripherals(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStartScanRevealsImmediateDevices(t *testing.T) {
	a := NewAdapter("hci0", pixel())
	ctx := context.Background()

	require.NoError(t, a.StartScan(ctx, adapter.ScanHint{}))
	assert.True(t, a.Scanning())

	got, err := a.Peripherals(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ble.Address("AA:BB:CC:DD:EE:01"), got[0].Address())

	props, err := got[0].Properties(ctx)
	require.NoError(t, err)
	name, ok := props.Name()
	assert.True(t, ok)
	assert.Equal(t, "Pixel", name)
}

func TestDelayedAppearance(t *testing.T) {
	d := pixel()
	d.AppearAfter = 50 * time.Millisecond
	a := NewAdapter("hci0", d)
	ctx := context.Background()

	require.NoError(t, a.StartScan(ctx, adapter.ScanHint{}))
	got, _ := a.Peripherals(ctx)
	assert.Empty(t, got)

	assert.Eventually(t, func() bool {
		got, _ := a.Peripherals(ctx)
		return len(got) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestStopScanCancelsPendingAppearance(t *testing.T) {
	d := pixel()
	d.AppearAfter = 30 * time.Millisecond
	a := NewAdapter("hci0", d)
	ctx := context.Background()

	require.NoError(t, a.StartScan(ctx, adapter.ScanHint{}))
	require.NoError(t, a.StopScan(ctx))
	assert.False(t, a.Scanning())

	time.Sleep(60 * time.Millisecond)
	got, _ := a.Peripherals(ctx)
	assert.Empty(t, got)
}

func TestCountersAndHints(t *testing.T) {
	a := NewAdapter("hci0")
	ctx := context.Background()
	hint := adapter.ScanHint{Services: []uuid.UUID{ble.UUIDFromUint32(0x180d)}}

	require.NoError(t, a.StartScan(ctx, hint))
	require.NoError(t, a.StopScan(ctx))

	assert.Equal(t, 1, a.Starts())
	assert.Equal(t, 1, a.Stops())
	assert.Equal(t, []adapter.ScanHint{hint}, a.Hints())
}

func TestInjectedErrors(t *testing.T) {
	a := NewAdapter("hci0", pixel())
	ctx := context.Background()
	startErr := errors.New("radio busy")
	stopErr := errors.New("radio gone")

	a.SetStartError(startErr)
	assert.ErrorIs(t, a.StartScan(ctx, adapter.ScanHint{}), startErr)
	assert.False(t, a.Scanning())

	a.SetStartError(nil)
	require.NoError(t, a.StartScan(ctx, adapter.ScanHint{}))

	a.SetStopError(stopErr)
	assert.ErrorIs(t, a.StopScan(ctx), stopErr)
	assert.Equal(t, 2, a.Starts())
	assert.Equal(t, 1, a.Stops())
}

func TestPropertiesError(t *testing.T) {
	boom := errors.New("read failed")
	d := pixel()
	d.PropertiesErr = boom
	a := NewAdapter("hci0", d)
	ctx := context.Background()

	require.NoError(t, a.StartScan(ctx, adapter.ScanHint{}))
	got, _ := a.Peripherals(ctx)
	require.Len(t, got, 1)

	_, err := got[0].Properties(ctx)
	assert.ErrorIs(t, err, boom)
}

func TestEventsDiscoveredAndUpdated(t *testing.T) {
	d := pixel()
	d.AppearAfter = 20 * time.Millisecond
	a := NewAdapter("hci0", d)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := a.Events(ctx)
	require.NoError(t, err)
	require.NoError(t, a.StartScan(ctx, adapter.ScanHint{}))

	select {
	case ev := <-events:
		assert.Equal(t, adapter.EventDiscovered, ev.Type)
		assert.Equal(t, d.Address, ev.Peripheral.Address())
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for discovery event")
	}

	a.Update(d.Address, &ble.Properties{LocalName: ble.StringPtr("Pixel 2")})
	select {
	case ev := <-events:
		assert.Equal(t, adapter.EventUpdated, ev.Type)
		props, err := ev.Peripheral.Properties(ctx)
		require.NoError(t, err)
		name, _ := props.Name()
		assert.Equal(t, "Pixel 2", name)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for update event")
	}
}

func TestEventsChannelClosesWithContext(t *testing.T) {
	a := NewAdapter("hci0")
	ctx, cancel := context.WithCancel(context.Background())

	events, err := a.Events(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestAddWhileScanning(t *testing.T) {
	a := NewAdapter("hci0")
	ctx := context.Background()
	require.NoError(t, a.StartScan(ctx, adapter.ScanHint{}))

	a.Add(pixel())

	got, _ := a.Peripherals(ctx)
	assert.Len(t, got, 1)
}

func TestProviderHotPlug(t *testing.T) {
	p := NewProvider()
	ctx := context.Background()

	got, err := p.Adapters(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	p.SetAdapters(NewAdapter("hci0"), NewAdapter("hci1"))
	got, err = p.Adapters(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "hci1", got[1].ID())
}
