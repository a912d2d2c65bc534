package adapter

import (
	"context"
	"fmt"

	"github.com/26F-Studio/webble/pkg/ble"
)

// Selector resolves adapters by index. It holds no adapter list of its own:
// every call asks the Provider again.
type Selector struct {
	provider Provider
}

// NewSelector creates a selector over p.
func NewSelector(p Provider) *Selector {
	return &Selector{provider: p}
}

// Available reports whether at least one adapter is present.
func (s *Selector) Available(ctx context.Context) (bool, error) {
	adapters, err := s.provider.Adapters(ctx)
	if err != nil {
		return false, err
	}
	return len(adapters) > 0, nil
}

// Select returns the adapter at index. It fails with ble.ErrNoAdapter when
// the index is out of range; it never falls back to another adapter.
func (s *Selector) Select(ctx context.Context, index int) (Adapter, error) {
	adapters, err := s.provider.Adapters(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(adapters) {
		return nil, fmt.Errorf("%w: index %d, %d present", ble.ErrNoAdapter, index, len(adapters))
	}
	return adapters[index], nil
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) ([]Adapter, error)

// Adapters calls f.
func (f ProviderFunc) Adapters(ctx context.Context) ([]Adapter, error) {
	return f(ctx)
}
