package filter

import (
	"strings"

	"github.com/26F-Studio/webble/pkg/ble"
)

// Matches reports whether the advertisement p satisfies expr. It is pure
// and total: a nil snapshot or an invalid expression is simply no match,
// except that AcceptAll accepts even a nil snapshot.
func Matches(p *ble.Properties, expr Expression) bool {
	switch expr.kind {
	case KindAcceptAll:
		return true
	case KindFilters:
		for _, c := range expr.clauses {
			if c.Matches(p) {
				return true
			}
		}
	}
	return false
}

// Matches reports whether p satisfies every criterion of the clause.
func (c Clause) Matches(p *ble.Properties) bool {
	if p == nil {
		return false
	}

	if c.Name != nil || c.NamePrefix != nil {
		name, ok := p.Name()
		if !ok {
			return false
		}
		if c.Name != nil && name != *c.Name {
			return false
		}
		if c.NamePrefix != nil && !strings.HasPrefix(name, *c.NamePrefix) {
			return false
		}
	}

	for _, u := range c.Services {
		if !p.HasService(u) {
			return false
		}
	}

	for _, m := range c.ManufacturerData {
		data, ok := p.ManufacturerData[m.CompanyIdentifier]
		if !ok || !m.DataFilter.Matches(data) {
			return false
		}
	}

	for _, s := range c.ServiceData {
		data, ok := p.ServiceData[s.Service]
		if !ok || !s.DataFilter.Matches(data) {
			return false
		}
	}

	return true
}

// Matches reports whether data starts with the masked prefix. A mask whose
// length differs from the prefix never matches.
func (d DataFilter) Matches(data []byte) bool {
	if len(data) < len(d.DataPrefix) {
		return false
	}
	if d.Mask != nil && len(d.Mask) != len(d.DataPrefix) {
		return false
	}
	for i, want := range d.DataPrefix {
		mask := byte(0xff)
		if d.Mask != nil {
			mask = d.Mask[i]
		}
		if data[i]&mask != want&mask {
			return false
		}
	}
	return true
}
