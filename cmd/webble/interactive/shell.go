// Package interactive provides the interactive shell of the webble command.
package interactive

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/26F-Studio/webble/pkg/adapter"
	"github.com/26F-Studio/webble/pkg/ble"
	"github.com/26F-Studio/webble/pkg/filter"
	"github.com/26F-Studio/webble/pkg/session"
	"github.com/chzyer/readline"
	"github.com/google/uuid"
)

// Manager is the discovery surface the shell drives. *session.Manager
// implements it.
type Manager interface {
	GetAvailability(ctx context.Context) (bool, error)
	RequestDevice(ctx context.Context, opts filter.RequestDeviceOptions) (*session.DeviceInfo, error)
	Device(id string) (adapter.Peripheral, bool)
	KnownDevices() int
	ActiveScans() int
}

// Shell handles interactive mode.
type Shell struct {
	m  Manager
	rl *readline.Instance
}

// New creates a shell reading from the terminal.
func New(m Manager) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "webble> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Shell{m: m, rl: rl}, nil
}

// Stdout returns a writer that coordinates with the prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the command loop. It returns when the user quits or ctx is
// done.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		cmd, rest, _ := strings.Cut(input, " ")
		rest = strings.TrimSpace(rest)

		switch strings.ToLower(cmd) {
		case "help", "?":
			s.printHelp()

		case "available", "avail", "a":
			s.cmdAvailable(ctx)

		case "request", "req", "r":
			s.cmdRequest(ctx, rest)

		case "device", "dev", "d":
			s.cmdDevice(ctx, rest)

		case "status":
			s.cmdStatus()

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
webble commands:
  available                  - Report whether a Bluetooth adapter is present
  request all                - Pick the first device seen
  request name <name>        - Pick a device by exact local name
  request prefix <prefix>    - Pick a device by local name prefix
  request service <uuid>...  - Pick a device advertising any of the services
  request {json}             - Pick a device with full requestDevice options
  device <id>                - Show the last advertisement of a picked device
  status                     - Show known devices and active scans
  help                       - Show this help
  quit                       - Exit

  Append "timeout <ms>" to a request to override the scan timeout.
  Services accept full UUIDs, 16/32-bit hex (0x180d) or names (heart_rate).`)
}

func (s *Shell) cmdAvailable(ctx context.Context) {
	ok, err := s.m.GetAvailability(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Availability query failed: %v\n", err)
		return
	}
	if ok {
		fmt.Fprintln(s.rl.Stdout(), "Bluetooth adapter available")
	} else {
		fmt.Fprintln(s.rl.Stdout(), "No Bluetooth adapter")
	}
}

func (s *Shell) cmdRequest(ctx context.Context, args string) {
	opts, err := parseRequest(args)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid request: %v\n", err)
		return
	}

	start := time.Now()
	fmt.Fprintln(s.rl.Stdout(), "Scanning...")
	info, err := s.m.RequestDevice(ctx, opts)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Request failed after %s [%s]: %v\n",
			time.Since(start).Round(time.Millisecond), ble.CodeOf(err), err)
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "Matched in %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(s.rl.Stdout(), "  ID:       %s\n", info.ID)
	if info.Name != "" {
		fmt.Fprintf(s.rl.Stdout(), "  Name:     %s\n", info.Name)
	}
	if len(info.Services) > 0 {
		fmt.Fprintf(s.rl.Stdout(), "  Services: %s\n", strings.Join(info.Services, ", "))
	}
}

func (s *Shell) cmdDevice(ctx context.Context, id string) {
	if id == "" {
		fmt.Fprintln(s.rl.Stdout(), "Usage: device <id>")
		return
	}
	p, ok := s.m.Device(id)
	if !ok {
		fmt.Fprintf(s.rl.Stdout(), "Unknown device: %s\n", id)
		return
	}
	props, err := p.Properties(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Reading properties failed: %v\n", err)
		return
	}
	fmt.Fprint(s.rl.Stdout(), formatProperties(props))
}

func (s *Shell) cmdStatus() {
	fmt.Fprintln(s.rl.Stdout(), "\nDiscovery Status")
	fmt.Fprintln(s.rl.Stdout(), "-------------------------------------------")
	fmt.Fprintf(s.rl.Stdout(), "  Known devices:  %d\n", s.m.KnownDevices())
	fmt.Fprintf(s.rl.Stdout(), "  Active scans:   %d\n", s.m.ActiveScans())
	fmt.Fprintln(s.rl.Stdout())
}

// parseRequest turns shell arguments into request options. Shorthand forms
// are rewritten to the JSON wire shape so both paths share validation.
func parseRequest(args string) (filter.RequestDeviceOptions, error) {
	if strings.HasPrefix(args, "{") {
		return filter.ParseRequestDeviceOptions([]byte(args))
	}

	fields := strings.Fields(args)
	wire := map[string]any{}

	if n := len(fields); n >= 2 && strings.EqualFold(fields[n-2], "timeout") {
		ms, err := strconv.ParseUint(fields[n-1], 10, 32)
		if err != nil {
			return filter.RequestDeviceOptions{}, fmt.Errorf("timeout: %w", err)
		}
		wire["timeoutMillis"] = ms
		fields = fields[:n-2]
	}

	if len(fields) == 0 {
		return filter.RequestDeviceOptions{}, fmt.Errorf("missing filter (try 'help')")
	}

	kind, values := strings.ToLower(fields[0]), fields[1:]
	switch kind {
	case "all":
		wire["acceptAllDevices"] = true
	case "name", "prefix":
		if len(values) == 0 {
			return filter.RequestDeviceOptions{}, fmt.Errorf("%s needs a value", kind)
		}
		key := "name"
		if kind == "prefix" {
			key = "namePrefix"
		}
		wire["filters"] = []map[string]any{{key: strings.Join(values, " ")}}
	case "service", "services":
		if len(values) == 0 {
			return filter.RequestDeviceOptions{}, fmt.Errorf("service needs at least one UUID")
		}
		clauses := make([]map[string]any, 0, len(values))
		for _, v := range values {
			var svc any = v
			if hexNum, ok := strings.CutPrefix(strings.ToLower(v), "0x"); ok {
				n, err := strconv.ParseUint(hexNum, 16, 32)
				if err != nil {
					return filter.RequestDeviceOptions{}, fmt.Errorf("service %s: %w", v, err)
				}
				svc = n
			}
			clauses = append(clauses, map[string]any{"services": []any{svc}})
		}
		wire["filters"] = clauses
	default:
		return filter.RequestDeviceOptions{}, fmt.Errorf("unknown filter %q", kind)
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return filter.RequestDeviceOptions{}, err
	}
	return filter.ParseRequestDeviceOptions(data)
}

// formatProperties renders an advertisement snapshot for display.
func formatProperties(p *ble.Properties) string {
	if p == nil {
		return "  (no advertisement received)\n"
	}

	var b strings.Builder
	if name, ok := p.Name(); ok {
		fmt.Fprintf(&b, "  Name:       %s\n", name)
	}
	if p.RSSI != nil {
		fmt.Fprintf(&b, "  RSSI:       %d dBm\n", *p.RSSI)
	}
	if p.TxPowerLevel != nil {
		fmt.Fprintf(&b, "  TX power:   %d dBm\n", *p.TxPowerLevel)
	}
	for _, svc := range p.Services {
		fmt.Fprintf(&b, "  Service:    %s\n", svc)
	}
	for _, company := range slices.Sorted(maps.Keys(p.ManufacturerData)) {
		fmt.Fprintf(&b, "  Mfr 0x%04x: %s\n", company, hex.EncodeToString(p.ManufacturerData[company]))
	}
	services := slices.SortedFunc(maps.Keys(p.ServiceData), func(a, b uuid.UUID) int {
		return strings.Compare(a.String(), b.String())
	})
	for _, svc := range services {
		fmt.Fprintf(&b, "  Data %s: %s\n", svc, hex.EncodeToString(p.ServiceData[svc]))
	}
	if b.Len() == 0 {
		return "  (empty advertisement)\n"
	}
	return b.String()
}
