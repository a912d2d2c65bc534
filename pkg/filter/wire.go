package filter

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/26F-Studio/webble/pkg/ble"
	"github.com/google/uuid"
)

// wireOptions mirrors the Web Bluetooth RequestDeviceOptions dictionary.
// Pointer and nil-slice fields distinguish "omitted" from "empty".
type wireOptions struct {
	AcceptAllDevices         *bool            `json:"acceptAllDevices"`
	Filters                  []wireScanFilter `json:"filters"`
	OptionalServices         []ServiceUUID    `json:"optionalServices"`
	OptionalManufacturerData []uint16         `json:"optionalManufacturerData"`
	TimeoutMillis            *int64           `json:"timeoutMillis"`

	// Timeout is the legacy name of TimeoutMillis.
	Timeout *int64 `json:"timeout"`
}

type wireScanFilter struct {
	Name             *string                  `json:"name"`
	NamePrefix       *string                  `json:"namePrefix"`
	Services         []ServiceUUID            `json:"services"`
	ManufacturerData []wireManufacturerFilter `json:"manufacturerData"`
	ServiceData      []wireServiceDataFilter  `json:"serviceData"`
}

type wireManufacturerFilter struct {
	CompanyIdentifier *uint16  `json:"companyIdentifier"`
	DataPrefix        ByteList `json:"dataPrefix"`
	Mask              ByteList `json:"mask"`
}

type wireServiceDataFilter struct {
	Service    *ServiceUUID `json:"service"`
	DataPrefix ByteList     `json:"dataPrefix"`
	Mask       ByteList     `json:"mask"`
}

// ParseRequestDeviceOptions decodes and validates the JSON form of a
// requestDevice call. Every failure wraps ble.ErrInvalidOptions.
func ParseRequestDeviceOptions(data []byte) (RequestDeviceOptions, error) {
	var w wireOptions
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&w); err != nil {
		return RequestDeviceOptions{}, fmt.Errorf("%w: %w", ble.ErrInvalidOptions, err)
	}
	return w.toOptions()
}

func (w *wireOptions) toOptions() (RequestDeviceOptions, error) {
	var opts RequestDeviceOptions

	acceptAll := w.AcceptAllDevices != nil && *w.AcceptAllDevices
	switch {
	case acceptAll && w.Filters != nil:
		return opts, fmt.Errorf("%w: acceptAllDevices and filters are mutually exclusive", ble.ErrInvalidOptions)
	case acceptAll:
		opts.Filter = AcceptAll()
	case len(w.Filters) == 0:
		return opts, fmt.Errorf("%w: either acceptAllDevices or a non-empty filters list is required", ble.ErrInvalidOptions)
	default:
		clauses := make([]Clause, 0, len(w.Filters))
		for i, f := range w.Filters {
			c, err := f.toClause()
			if err != nil {
				return opts, fmt.Errorf("filters[%d]: %w", i, err)
			}
			clauses = append(clauses, c)
		}
		expr, err := AnyOf(clauses...)
		if err != nil {
			return opts, err
		}
		opts.Filter = expr
	}

	for _, s := range w.OptionalServices {
		opts.OptionalServices = append(opts.OptionalServices, s.UUID)
	}
	opts.OptionalManufacturerData = w.OptionalManufacturerData

	millis := w.TimeoutMillis
	if millis == nil {
		millis = w.Timeout
	}
	if millis != nil {
		if *millis < 0 {
			return RequestDeviceOptions{}, fmt.Errorf("%w: negative timeout", ble.ErrInvalidOptions)
		}
		// Saturate rather than wrap so the manager's maximum still applies.
		if *millis > math.MaxInt64/int64(time.Millisecond) {
			opts.Timeout = math.MaxInt64
		} else {
			opts.Timeout = time.Duration(*millis) * time.Millisecond
		}
	}

	return opts, opts.Validate()
}

func (f wireScanFilter) toClause() (Clause, error) {
	c := Clause{
		Name:       f.Name,
		NamePrefix: f.NamePrefix,
	}

	if f.Services != nil && len(f.Services) == 0 {
		return c, fmt.Errorf("%w: services must not be empty", ble.ErrInvalidOptions)
	}
	for _, s := range f.Services {
		c.Services = append(c.Services, s.UUID)
	}

	if f.ManufacturerData != nil && len(f.ManufacturerData) == 0 {
		return c, fmt.Errorf("%w: manufacturerData must not be empty", ble.ErrInvalidOptions)
	}
	for i, m := range f.ManufacturerData {
		if m.CompanyIdentifier == nil {
			return c, fmt.Errorf("%w: manufacturerData[%d]: companyIdentifier is required", ble.ErrInvalidOptions, i)
		}
		c.ManufacturerData = append(c.ManufacturerData, ManufacturerDataFilter{
			CompanyIdentifier: *m.CompanyIdentifier,
			DataFilter:        DataFilter{DataPrefix: m.DataPrefix, Mask: m.Mask},
		})
	}

	if f.ServiceData != nil && len(f.ServiceData) == 0 {
		return c, fmt.Errorf("%w: serviceData must not be empty", ble.ErrInvalidOptions)
	}
	for i, s := range f.ServiceData {
		if s.Service == nil {
			return c, fmt.Errorf("%w: serviceData[%d]: service is required", ble.ErrInvalidOptions, i)
		}
		c.ServiceData = append(c.ServiceData, ServiceDataFilter{
			Service:    s.Service.UUID,
			DataFilter: DataFilter{DataPrefix: s.DataPrefix, Mask: s.Mask},
		})
	}

	return c, nil
}

// ServiceUUID is a service identifier in either wire form: a JSON number
// (16- or 32-bit assigned number) or a JSON string (full UUID or registry
// name).
type ServiceUUID struct {
	uuid.UUID
}

// UnmarshalJSON resolves either form to the full 128-bit UUID.
func (s *ServiceUUID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		u, err := ble.ParseServiceUUID(str)
		if err != nil {
			return err
		}
		s.UUID = u
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: service must be a number or string", ble.ErrInvalidUUID)
	}
	v, err := n.Int64()
	if err != nil || v < 0 || v > math.MaxUint32 {
		return fmt.Errorf("%w: %s is not a 32-bit assigned number", ble.ErrInvalidUUID, n)
	}
	s.UUID = ble.UUIDFromUint32(uint32(v))
	return nil
}

// MarshalJSON writes the canonical string form.
func (s ServiceUUID) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.UUID.String())
}

// ByteList decodes a BufferSource sent over IPC: either a JSON array of
// byte values or a base64 string. A JSON null leaves it nil.
type ByteList []byte

// UnmarshalJSON accepts an array of 0..255 or a base64 string.
func (b *ByteList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		raw, err := base64.StdEncoding.DecodeString(str)
		if err != nil {
			return fmt.Errorf("%w: invalid base64 data: %w", ble.ErrInvalidOptions, err)
		}
		*b = raw
		return nil
	}

	var vals []int
	if err := json.Unmarshal(data, &vals); err != nil {
		return fmt.Errorf("%w: byte data must be an array or base64 string", ble.ErrInvalidOptions)
	}
	out := make([]byte, len(vals))
	for i, v := range vals {
		if v < 0 || v > 0xff {
			return fmt.Errorf("%w: byte value %d out of range", ble.ErrInvalidOptions, v)
		}
		out[i] = byte(v)
	}
	*b = out
	return nil
}
