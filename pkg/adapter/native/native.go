package native

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/26F-Studio/webble/pkg/adapter"
	"github.com/26F-Studio/webble/pkg/ble"
	"tinygo.org/x/bluetooth"
)

// startGrace is how long StartScan waits for the radio to reject a scan.
// Controllers that refuse (powered off, busy) do so immediately.
const startGrace = 50 * time.Millisecond

// radio is the subset of *bluetooth.Adapter the backend drives.
type radio interface {
	Enable() error
	Scan(callback func(*bluetooth.Adapter, bluetooth.ScanResult)) error
	StopScan() error
}

var errAlreadyScanning = errors.New("scan already running")

// Provider enumerates host radios. Adapters are opened once and reused
// across enumerations so their peripheral tables survive.
type Provider struct {
	logger *slog.Logger

	mu       sync.Mutex
	adapters map[string]*Adapter
}

var _ adapter.Provider = (*Provider)(nil)

// NewProvider creates a provider. A nil logger discards output.
func NewProvider(logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Provider{
		logger:   logger,
		adapters: make(map[string]*Adapter),
	}
}

// Adapters implements adapter.Provider.
func (p *Provider) Adapters(ctx context.Context) ([]adapter.Adapter, error) {
	ids, err := listAdapterIDs()
	if err != nil {
		return nil, fmt.Errorf("enumerate adapters: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]adapter.Adapter, 0, len(ids))
	for _, id := range ids {
		a, ok := p.adapters[id]
		if !ok {
			a = newAdapter(id, openRadio(id), p.logger)
			p.adapters[id] = a
		}
		out = append(out, a)
	}
	return out, nil
}

// Adapter wraps one radio. It implements adapter.Adapter and
// adapter.EventSource.
type Adapter struct {
	id     string
	radio  radio
	logger *slog.Logger

	enableOnce sync.Once
	enableErr  error

	mu       sync.Mutex
	seen     map[ble.Address]*peripheral
	order    []ble.Address
	subs     map[chan adapter.Event]struct{}
	scanDone chan struct{}
	scanErr  error
}

var (
	_ adapter.Adapter     = (*Adapter)(nil)
	_ adapter.EventSource = (*Adapter)(nil)
)

func newAdapter(id string, r radio, logger *slog.Logger) *Adapter {
	return &Adapter{
		id:     id,
		radio:  r,
		logger: logger.With("adapter", id),
		seen:   make(map[ble.Address]*peripheral),
		subs:   make(map[chan adapter.Event]struct{}),
	}
}

// ID implements adapter.Adapter.
func (a *Adapter) ID() string {
	return a.id
}

// StartScan implements adapter.Adapter. The hint is ignored.
func (a *Adapter) StartScan(ctx context.Context, _ adapter.ScanHint) error {
	a.enableOnce.Do(func() {
		a.enableErr = a.radio.Enable()
	})
	if a.enableErr != nil {
		return fmt.Errorf("enable %s: %w", a.id, a.enableErr)
	}

	a.mu.Lock()
	if a.scanDone != nil {
		a.mu.Unlock()
		return errAlreadyScanning
	}
	done := make(chan struct{})
	a.scanDone = done
	a.scanErr = nil
	clear(a.seen)
	a.order = a.order[:0]
	a.mu.Unlock()

	go func() {
		err := a.radio.Scan(func(_ *bluetooth.Adapter, r bluetooth.ScanResult) {
			a.record(ble.Address(r.Address.String()), propertiesFrom(r.AdvertisementPayload, r.RSSI))
		})
		a.mu.Lock()
		a.scanErr = err
		a.scanDone = nil
		a.mu.Unlock()
		close(done)
	}()

	select {
	case <-done:
		a.mu.Lock()
		err := a.scanErr
		a.mu.Unlock()
		if err != nil {
			return err
		}
		return errors.New("scan ended immediately")
	case <-time.After(startGrace):
		return nil
	case <-ctx.Done():
		if err := a.StopScan(context.Background()); err != nil {
			a.logger.Debug("stop after cancelled start", "error", err)
		}
		return ctx.Err()
	}
}

// StopScan implements adapter.Adapter. Stopping an adapter that is not
// scanning succeeds.
func (a *Adapter) StopScan(ctx context.Context) error {
	a.mu.Lock()
	done := a.scanDone
	a.mu.Unlock()
	if done == nil {
		return nil
	}

	if err := a.radio.StopScan(); !isBenignStopError(err) {
		return err
	}

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	a.mu.Lock()
	err := a.scanErr
	a.mu.Unlock()
	if isBenignStopError(err) {
		return nil
	}
	return err
}

// Peripherals implements adapter.Adapter, in discovery order.
func (a *Adapter) Peripherals(ctx context.Context) ([]adapter.Peripheral, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]adapter.Peripheral, 0, len(a.order))
	for _, addr := range a.order {
		out = append(out, a.seen[addr])
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
		a.mu.Unlock()
		close(ch)
	}()
	return ch, nil
}

// record stores an advertisement and notifies subscribers.
func (a *Adapter) record(addr ble.Address, props *ble.Properties) {
	a.mu.Lock()
	defer a.mu.Unlock()

	typ := adapter.EventUpdated
	p, ok := a.seen[addr]
	if !ok {
		p = &peripheral{addr: addr}
		a.seen[addr] = p
		a.order = append(a.order, addr)
		typ = adapter.EventDiscovered
	}
	p.set(props)

	ev := adapter.Event{Type: typ, Peripheral: p}
	for ch := range a.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Scanning reports whether a scan goroutine is running.
func (a *Adapter) Scanning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.scanDone != nil
}

type peripheral struct {
	addr ble.Address

	mu    sync.RWMutex
	props *ble.Properties
}

func (p *peripheral) Address() ble.Address {
	return p.addr
}

func (p *peripheral) Properties(ctx context.Context) (*ble.Properties, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.props, nil
}

func (p *peripheral) set(props *ble.Properties) {
	p.mu.Lock()
	p.props = props
	p.mu.Unlock()
}

// sortedIDs orders controller names by numeric suffix (hci2 before hci10).
func sortedIDs(ids []string) []string {
	slices.SortFunc(ids, func(a, b string) int {
		if len(a) != len(b) {
			return len(a) - len(b)
		}
		return cmp.Compare(a, b)
	})
	return ids
}
