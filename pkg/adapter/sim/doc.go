// Package sim provides a deterministic in-memory Bluetooth backend.
//
// A sim Adapter holds a set of scripted peripherals. When a scan starts,
// each peripheral becomes visible after its AppearAfter delay; visible
// peripherals are returned by Peripherals and announced on every Events
// subscription. Start and stop failures can be injected, and the adapter
// counts the scan commands it receives so tests can assert on them.
//
// Fixtures can be described in YAML and loaded with LoadFixture:
//
//	adapters:
//	  - id: hci0
//	    peripherals:
//	      - address: "AA:BB:CC:DD:EE:01"
//	        name: Pixel
//	        services: [heart_rate]
//	        appear_after: 150ms
package sim
