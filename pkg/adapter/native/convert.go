package native

import (
	"strings"

	"github.com/26F-Studio/webble/pkg/ble"
	"github.com/google/uuid"
	"tinygo.org/x/bluetooth"
)

// advertisement is the part of bluetooth.AdvertisementPayload we read.
type advertisement interface {
	LocalName() string
	ServiceUUIDs() []bluetooth.UUID
	ManufacturerData() []bluetooth.ManufacturerDataElement
	ServiceData() []bluetooth.ServiceDataElement
}

// propertiesFrom converts one advertisement into a snapshot. The bluetooth
// package reports a missing name as "", which is mapped to no name.
func propertiesFrom(adv advertisement, rssi int16) *ble.Properties {
	p := &ble.Properties{RSSI: &rssi}
	if adv == nil {
		return p
	}

	if name := adv.LocalName(); name != "" {
		p.LocalName = &name
	}

	for _, u := range adv.ServiceUUIDs() {
		if id, ok := toUUID(u); ok {
			p.Services = append(p.Services, id)
		}
	}

	if md := adv.ManufacturerData(); len(md) > 0 {
		p.ManufacturerData = make(map[uint16][]byte, len(md))
		for _, e := range md {
			p.ManufacturerData[e.CompanyID] = append([]byte(nil), e.Data...)
		}
	}

	if sd := adv.ServiceData(); len(sd) > 0 {
		p.ServiceData = make(map[uuid.UUID][]byte, len(sd))
		for _, e := range sd {
			if id, ok := toUUID(e.UUID); ok {
				p.ServiceData[id] = append([]byte(nil), e.Data...)
			}
		}
	}

	return p
}

func toUUID(u bluetooth.UUID) (uuid.UUID, bool) {
	id, err := uuid.Parse(u.String())
	return id, err == nil
}

// isBenignStopError reports whether a StopScan error only means that no
// scan was running, which happens when the radio ended it on its own.
func isBenignStopError(err error) bool {
	if err == nil {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no scan in progress") ||
		strings.Contains(msg, "no discovery started") ||
		strings.Contains(msg, "not scanning")
}
