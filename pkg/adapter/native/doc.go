// Package native drives real radios through tinygo.org/x/bluetooth.
//
// On Linux every hciN controller under /sys/class/bluetooth is offered,
// in index order, and opened through BlueZ. Other platforms expose the
// single system default adapter with ID "default".
//
// The bluetooth package has no scan filter API, so ScanHint is ignored
// and every advertisement is recorded. Peripherals seen in a scan stay
// listed until the next StartScan on the same adapter.
package native
