//go:build linux

package native

import (
	"errors"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"tinygo.org/x/bluetooth"
)

const sysfsBluetooth = "/sys/class/bluetooth"

// Connection entries such as "hci0:64" live next to the controllers.
var controllerName = regexp.MustCompile(`^hci[0-9]+$`)

func listAdapterIDs() ([]string, error) {
	return listControllers(os.DirFS(sysfsBluetooth))
}

func listControllers(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var ids []string
	for _, e := range entries {
		if controllerName.MatchString(e.Name()) {
			ids = append(ids, e.Name())
		}
	}
	return sortedIDs(ids), nil
}

func openRadio(id string) radio {
	if strings.TrimSpace(id) == "" {
		return bluetooth.DefaultAdapter
	}
	return bluetooth.NewAdapter(id)
}
