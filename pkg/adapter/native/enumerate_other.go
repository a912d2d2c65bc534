//go:build !linux

package native

import "tinygo.org/x/bluetooth"

// defaultID names the only adapter exposed off Linux.
const defaultID = "default"

func listAdapterIDs() ([]string, error) {
	return []string{defaultID}, nil
}

func openRadio(string) radio {
	return bluetooth.DefaultAdapter
}
