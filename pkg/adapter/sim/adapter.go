package sim

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/26F-Studio/webble/pkg/adapter"
	"github.com/26F-Studio/webble/pkg/ble"
)

// Device scripts one simulated peripheral.
type Device struct {
	Address    ble.Address
	Properties *ble.Properties

	// AppearAfter delays visibility from the start of the first scan.
	AppearAfter time.Duration

	// PropertiesErr, if set, is returned by every Properties read.
	PropertiesErr error
}

// Peripheral is the handle the sim adapter hands out.
type Peripheral struct {
	a    *Adapter
	addr ble.Address
}

// Address implements adapter.Peripheral.
func (p *Peripheral) Address() ble.Address {
	return p.addr
}

// Properties implements adapter.Peripheral. It returns the current
// snapshot, so updates made with Adapter.Update are visible.
func (p *Peripheral) Properties(ctx context.Context) (*ble.Properties, error) {
	p.a.mu.Lock()
	defer p.a.mu.Unlock()
	d, ok := p.a.devices[p.addr]
	if !ok {
		return nil, nil
	}
	if d.PropertiesErr != nil {
		return nil, d.PropertiesErr
	}
	return d.Properties, nil
}

// Adapter is a simulated radio. It implements adapter.Adapter and
// adapter.EventSource.
type Adapter struct {
	id string

	mu       sync.Mutex
	devices  map[ble.Address]Device
	order    []ble.Address
	visible  map[ble.Address]*Peripheral
	pending  []*time.Timer
	scanning bool
	subs     map[chan adapter.Event]struct{}
	hints    []adapter.ScanHint
	starts   int
	stops    int
	startErr error
	stopErr  error
}

var (
	_ adapter.Adapter     = (*Adapter)(nil)
	_ adapter.EventSource = (*Adapter)(nil)
)

// NewAdapter creates a sim adapter with the given devices.
func NewAdapter(id string, devices ...Device) *Adapter {
	a := &Adapter{
		id:      id,
		devices: make(map[ble.Address]Device),
		visible: make(map[ble.Address]*Peripheral),
		subs:    make(map[chan adapter.Event]struct{}),
	}
	for _, d := range devices {
		a.devices[d.Address] = d
		a.order = append(a.order, d.Address)
	}
	return a
}

// ID implements adapter.Adapter.
func (a *Adapter) ID() string {
	return a.id
}

// SetStartError makes subsequent StartScan calls fail with err.
func (a *Adapter) SetStartError(err error) {
	a.mu.Lock()
	a.startErr = err
	a.mu.Unlock()
}

// SetStopError makes subsequent StopScan calls fail with err.
func (a *Adapter) SetStopError(err error) {
	a.mu.Lock()
	a.stopErr = err
	a.mu.Unlock()
}

// StartScan implements adapter.Adapter.
func (a *Adapter) StartScan(ctx context.Context, hint adapter.ScanHint) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.starts++
	a.hints = append(a.hints, hint)
	if a.startErr != nil {
		return a.startErr
	}
	a.scanning = true

	for _, addr := range a.order {
		if _, ok := a.visible[addr]; ok {
			continue
		}
		a.schedule(addr, a.devices[addr].AppearAfter)
	}
	return nil
}

// schedule makes addr visible after delay. Caller holds mu.
func (a *Adapter) schedule(addr ble.Address, delay time.Duration) {
	if delay <= 0 {
		a.appearLocked(addr)
		return
	}
	a.pending = append(a.pending, time.AfterFunc(delay, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.scanning {
			a.appearLocked(addr)
		}
	}))
}

func (a *Adapter) appearLocked(addr ble.Address) {
	if _, ok := a.visible[addr]; ok {
		return
	}
	p := &Peripheral{a: a, addr: addr}
	a.visible[addr] = p
	a.publishLocked(adapter.Event{Type: adapter.EventDiscovered, Peripheral: p})
}

// publishLocked fans ev out without blocking; full subscribers miss it.
func (a *Adapter) publishLocked(ev adapter.Event) {
	for ch := range a.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// StopScan implements adapter.Adapter. Pending appearances are cancelled;
// peripherals already visible stay known.
func (a *Adapter) StopScan(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stops++
	if a.stopErr != nil {
		return a.stopErr
	}
	a.scanning = false
	for _, t := range a.pending {
		t.Stop()
	}
	a.pending = nil
	return nil
}

// Peripherals implements adapter.Adapter.
func (a *Adapter) Peripherals(ctx context.Context) ([]adapter.Peripheral, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]adapter.Peripheral, 0, len(a.visible))
	for _, addr := range a.order {
		if p, ok := a.visible[addr]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// Events implements adapter.EventSource.
func (a *Adapter) Events(ctx context.Context) (<-chan adapter.Event, error) {
	ch := make(chan adapter.Event, 16)

	a.mu.Lock()
	a.subs[ch] = struct{}{}
	a.mu.Unlock()

	go func() {
		<-ctx.Done()
		a.mu.Lock()
		delete(a.subs, ch)
		close(ch)
		a.mu.Unlock()
	}()
	return ch, nil
}

// Add scripts another device. If a scan is running its appearance is
// scheduled right away.
func (a *Adapter) Add(d Device) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.devices[d.Address]; !ok {
		a.order = append(a.order, d.Address)
	}
	a.devices[d.Address] = d
	if a.scanning {
		a.schedule(d.Address, d.AppearAfter)
	}
}

// Update replaces the advertised properties of a device. Subscribers get
// an EventUpdated if the device is visible.
func (a *Adapter) Update(addr ble.Address, props *ble.Properties) {
	a.mu.Lock()
	defer a.mu.Unlock()

	d, ok := a.devices[addr]
	if !ok {
		return
	}
	d.Properties = props
	a.devices[addr] = d
	if p, ok := a.visible[addr]; ok {
		a.publishLocked(adapter.Event{Type: adapter.EventUpdated, Peripheral: p})
	}
}

// Scanning reports whether a scan is running.
func (a *Adapter) Scanning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.scanning
}

// Starts returns the number of StartScan calls received.
func (a *Adapter) Starts() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.starts
}

// Stops returns the number of StopScan calls received.
func (a *Adapter) Stops() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stops
}

// Hints returns the scan hints received, oldest first.
func (a *Adapter) Hints() []adapter.ScanHint {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.hints)
}

// Provider serves a mutable list of sim adapters.
type Provider struct {
	mu       sync.Mutex
	adapters []*Adapter
}

// NewProvider creates a provider over adapters.
func NewProvider(adapters ...*Adapter) *Provider {
	return &Provider{adapters: adapters}
}

// Adapters implements adapter.Provider.
func (p *Provider) Adapters(ctx context.Context) ([]adapter.Adapter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]adapter.Adapter, len(p.adapters))
	for i, a := range p.adapters {
		out[i] = a
	}
	return out, nil
}

// SetAdapters replaces the adapter list, simulating hot-plug.
func (p *Provider) SetAdapters(adapters ...*Adapter) {
	p.mu.Lock()
	p.adapters = adapters
	p.mu.Unlock()
}
