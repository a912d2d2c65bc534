package sim

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/26F-Studio/webble/pkg/ble"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML form of a simulated host.
type Fixture struct {
	Adapters []AdapterFixture `yaml:"adapters"`
}

// AdapterFixture describes one simulated adapter.
type AdapterFixture struct {
	ID          string              `yaml:"id"`
	StartError  string              `yaml:"start_error,omitempty"`
	StopError   string              `yaml:"stop_error,omitempty"`
	Peripherals []PeripheralFixture `yaml:"peripherals"`
}

// PeripheralFixture describes one simulated peripheral. Manufacturer and
// service data payloads are hex strings.
type PeripheralFixture struct {
	Address          string            `yaml:"address"`
	Name             *string           `yaml:"name,omitempty"`
	Services         []string          `yaml:"services,omitempty"`
	ManufacturerData map[uint16]string `yaml:"manufacturer_data,omitempty"`
	ServiceData      map[string]string `yaml:"service_data,omitempty"`
	RSSI             *int16            `yaml:"rssi,omitempty"`
	TxPower          *int16            `yaml:"tx_power,omitempty"`
	AppearAfter      time.Duration     `yaml:"appear_after,omitempty"`
	PropertiesError  string            `yaml:"properties_error,omitempty"`
}

// LoadError reports a fixture that could not be loaded.
type LoadError struct {
	// File is the fixture path, empty when parsing from bytes.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ParseFixture parses a fixture from YAML bytes.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}
	if len(f.Adapters) == 0 {
		return nil, &LoadError{Message: "fixture must declare at least one adapter"}
	}
	return &f, nil
}

// LoadFixture reads and parses a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}
	f, err := ParseFixture(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
		}
		return nil, err
	}
	return f, nil
}

// Build turns the fixture into a Provider with freshly built adapters.
func (f *Fixture) Build() (*Provider, error) {
	adapters := make([]*Adapter, 0, len(f.Adapters))
	for i, af := range f.Adapters {
		a, err := af.build()
		if err != nil {
			return nil, &LoadError{Message: fmt.Sprintf("adapter %d", i), Cause: err}
		}
		adapters = append(adapters, a)
	}
	return NewProvider(adapters...), nil
}

func (af AdapterFixture) build() (*Adapter, error) {
	if af.ID == "" {
		return nil, errors.New("id is required")
	}
	devices := make([]Device, 0, len(af.Peripherals))
	for _, pf := range af.Peripherals {
		d, err := pf.device()
		if err != nil {
			return nil, fmt.Errorf("peripheral %q: %w", pf.Address, err)
		}
		devices = append(devices, d)
	}

	a := NewAdapter(af.ID, devices...)
	if af.StartError != "" {
		a.SetStartError(errors.New(af.StartError))
	}
	if af.StopError != "" {
		a.SetStopError(errors.New(af.StopError))
	}
	return a, nil
}

func (pf PeripheralFixture) device() (Device, error) {
	if pf.Address == "" {
		return Device{}, errors.New("address is required")
	}

	props := &ble.Properties{
		LocalName:    pf.Name,
		RSSI:         pf.RSSI,
		TxPowerLevel: pf.TxPower,
	}
	for _, s := range pf.Services {
		u, err := ble.ParseServiceUUID(s)
		if err != nil {
			return Device{}, err
		}
		props.Services = append(props.Services, u)
	}
	if len(pf.ManufacturerData) > 0 {
		props.ManufacturerData = make(map[uint16][]byte, len(pf.ManufacturerData))
		for company, payload := range pf.ManufacturerData {
			b, err := hex.DecodeString(payload)
			if err != nil {
				return Device{}, fmt.Errorf("manufacturer data 0x%04x: %w", company, err)
			}
			props.ManufacturerData[company] = b
		}
	}
	if len(pf.ServiceData) > 0 {
		props.ServiceData = make(map[uuid.UUID][]byte, len(pf.ServiceData))
		for service, payload := range pf.ServiceData {
			u, err := ble.ParseServiceUUID(service)
			if err != nil {
				return Device{}, err
			}
			b, err := hex.DecodeString(payload)
			if err != nil {
				return Device{}, fmt.Errorf("service data %s: %w", service, err)
			}
			props.ServiceData[u] = b
		}
	}

	d := Device{
		Address:     ble.Address(pf.Address),
		Properties:  props,
		AppearAfter: pf.AppearAfter,
	}
	if pf.PropertiesError != "" {
		d.PropertiesErr = errors.New(pf.PropertiesError)
	}
	return d, nil
}
