package filter

import (
	"fmt"
	"slices"
	"time"

	"github.com/26F-Studio/webble/pkg/ble"
	"github.com/google/uuid"
)

// Limits taken from the Web Bluetooth requestDevice algorithm.
const (
	// MaxNameLength is the maximum length in bytes of a name or name prefix.
	MaxNameLength = 248
)

// Kind tags the variant held by an Expression.
type Kind uint8

const (
	// KindInvalid is the zero value; it never matches and fails validation.
	KindInvalid Kind = iota

	// KindAcceptAll matches every peripheral.
	KindAcceptAll

	// KindFilters matches peripherals satisfying any clause.
	KindFilters
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAcceptAll:
		return "ACCEPT_ALL"
	case KindFilters:
		return "FILTERS"
	default:
		return "INVALID"
	}
}

// Expression is the tagged filter variant. Build one with AcceptAll or
// AnyOf; the zero value is invalid.
type Expression struct {
	kind    Kind
	clauses []Clause
}

// AcceptAll returns an expression matching every peripheral.
func AcceptAll() Expression {
	return Expression{kind: KindAcceptAll}
}

// AnyOf returns an expression matching peripherals that satisfy any of the
// clauses. It fails with ble.ErrInvalidOptions when the list is empty or a
// clause is malformed.
func AnyOf(clauses ...Clause) (Expression, error) {
	e := Expression{kind: KindFilters, clauses: slices.Clone(clauses)}
	if err := e.Validate(); err != nil {
		return Expression{}, err
	}
	return e, nil
}

// Kind returns the variant tag.
func (e Expression) Kind() Kind {
	return e.kind
}

// Clauses returns a copy of the clause list (empty for AcceptAll).
func (e Expression) Clauses() []Clause {
	return slices.Clone(e.clauses)
}

// Validate checks the expression invariants.
func (e Expression) Validate() error {
	switch e.kind {
	case KindAcceptAll:
		return nil
	case KindFilters:
		if len(e.clauses) == 0 {
			return fmt.Errorf("%w: filters must not be empty", ble.ErrInvalidOptions)
		}
		for i, c := range e.clauses {
			if err := c.Validate(); err != nil {
				return fmt.Errorf("filters[%d]: %w", i, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: neither acceptAllDevices nor filters given", ble.ErrInvalidOptions)
	}
}

// ServiceHint returns the services a platform scan filter may be narrowed
// to. It is nil unless every clause requires at least one service, since a
// hint must never hide a peripheral the expression would accept.
func (e Expression) ServiceHint() []uuid.UUID {
	if e.kind != KindFilters {
		return nil
	}
	var hint []uuid.UUID
	for _, c := range e.clauses {
		if len(c.Services) == 0 {
			return nil
		}
		for _, u := range c.Services {
			if !slices.Contains(hint, u) {
				hint = append(hint, u)
			}
		}
	}
	return hint
}

// Clause is one set of acceptance criteria. Nil/empty fields do not
// constrain.
type Clause struct {
	Name             *string
	NamePrefix       *string
	Services         []uuid.UUID
	ManufacturerData []ManufacturerDataFilter
	ServiceData      []ServiceDataFilter
}

// Validate checks that the clause constrains something and that each
// criterion is well formed.
func (c Clause) Validate() error {
	if c.Name == nil && c.NamePrefix == nil && len(c.Services) == 0 &&
		len(c.ManufacturerData) == 0 && len(c.ServiceData) == 0 {
		return fmt.Errorf("%w: filter has no criteria", ble.ErrInvalidOptions)
	}
	if c.Name != nil && len(*c.Name) > MaxNameLength {
		return fmt.Errorf("%w: name longer than %d bytes", ble.ErrInvalidOptions, MaxNameLength)
	}
	if c.NamePrefix != nil {
		if *c.NamePrefix == "" {
			return fmt.Errorf("%w: namePrefix must not be empty", ble.ErrInvalidOptions)
		}
		if len(*c.NamePrefix) > MaxNameLength {
			return fmt.Errorf("%w: namePrefix longer than %d bytes", ble.ErrInvalidOptions, MaxNameLength)
		}
	}
	seen := make(map[uint16]bool, len(c.ManufacturerData))
	for i, m := range c.ManufacturerData {
		if seen[m.CompanyIdentifier] {
			return fmt.Errorf("%w: manufacturerData[%d]: duplicate company identifier %#04x",
				ble.ErrInvalidOptions, i, m.CompanyIdentifier)
		}
		seen[m.CompanyIdentifier] = true
		if err := m.DataFilter.Validate(); err != nil {
			return fmt.Errorf("manufacturerData[%d]: %w", i, err)
		}
	}
	for i, s := range c.ServiceData {
		if err := s.DataFilter.Validate(); err != nil {
			return fmt.Errorf("serviceData[%d]: %w", i, err)
		}
	}
	return nil
}

// DataFilter matches a payload by masked prefix.
type DataFilter struct {
	// DataPrefix is the expected start of the payload. Empty accepts any
	// payload, including an empty one.
	DataPrefix []byte

	// Mask selects the bits of DataPrefix that must match. Nil compares
	// every bit. When set it has the same length as DataPrefix.
	Mask []byte
}

// Validate checks the mask/prefix relationship.
func (d DataFilter) Validate() error {
	if d.Mask != nil && len(d.Mask) != len(d.DataPrefix) {
		return fmt.Errorf("%w: mask length %d does not match dataPrefix length %d",
			ble.ErrInvalidOptions, len(d.Mask), len(d.DataPrefix))
	}
	return nil
}

// ManufacturerDataFilter matches manufacturer-specific data of one company.
type ManufacturerDataFilter struct {
	CompanyIdentifier uint16
	DataFilter
}

// ServiceDataFilter matches the data advertised for one service.
type ServiceDataFilter struct {
	Service uuid.UUID
	DataFilter
}

// RequestDeviceOptions is the validated form of a requestDevice call.
type RequestDeviceOptions struct {
	// Filter selects the device.
	Filter Expression

	// OptionalServices are services the caller may use later without
	// filtering on them.
	OptionalServices []uuid.UUID

	// OptionalManufacturerData are company identifiers the caller may read
	// later without filtering on them.
	OptionalManufacturerData []uint16

	// Timeout bounds the scan. Zero selects the manager default.
	Timeout time.Duration
}

// Validate checks the options invariants.
func (o RequestDeviceOptions) Validate() error {
	if o.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout", ble.ErrInvalidOptions)
	}
	return o.Filter.Validate()
}
