// Package command exposes the discovery manager at an IPC boundary.
//
// Requests and responses are JSON objects. A request names a command and
// carries its arguments; a response carries either a result or an error
// envelope with a stable code:
//
//	{"id":"1","command":"request_device","args":{"acceptAllDevices":true}}
//	{"id":"1","result":{"id":"ZmQ0...","name":"Pixel","services":[]}}
//	{"id":"2","error":{"code":"DEVICE_NOT_FOUND","message":"device not found"}}
package command

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/26F-Studio/webble/pkg/ble"
	"github.com/26F-Studio/webble/pkg/filter"
	"github.com/26F-Studio/webble/pkg/log"
	"github.com/26F-Studio/webble/pkg/session"
	"golang.org/x/sync/errgroup"
)

// Command names.
const (
	GetAvailability = "get_availability"
	RequestDevice   = "request_device"
)

// Codes for failures of the envelope itself.
const (
	CodeBadRequest     ble.Code = "BAD_REQUEST"
	CodeUnknownCommand ble.Code = "UNKNOWN_COMMAND"
)

var (
	// ErrBadRequest is returned for requests that are not valid JSON.
	ErrBadRequest = errors.New("malformed request")

	// ErrUnknownCommand is returned for unsupported command names.
	ErrUnknownCommand = errors.New("unknown command")
)

// Discoverer is the discovery surface driven by the dispatcher.
// *session.Manager implements it.
type Discoverer interface {
	GetAvailability(ctx context.Context) (bool, error)
	RequestDevice(ctx context.Context, opts filter.RequestDeviceOptions) (*session.DeviceInfo, error)
}

// Request is one command invocation.
type Request struct {
	ID      string          `json:"id,omitempty"`
	Command string          `json:"command"`
	Args    json.RawMessage `json:"args,omitempty"`
}

// Response answers one Request. Exactly one of Result and Error is set.
type Response struct {
	ID     string `json:"id,omitempty"`
	Result any    `json:"result,omitempty"`
	Error  *Error `json:"error,omitempty"`
}

// Error is the error envelope.
type Error struct {
	Code    ble.Code `json:"code"`
	Message string   `json:"message"`
}

// Dispatcher routes requests to a Discoverer.
type Dispatcher struct {
	d      Discoverer
	logger *slog.Logger
	events log.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithEventLogger records failed commands in the discovery trace.
func WithEventLogger(l log.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.events = l
		}
	}
}

// NewDispatcher creates a dispatcher. A nil logger discards output.
func NewDispatcher(d Discoverer, logger *slog.Logger, opts ...Option) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	disp := &Dispatcher{d: d, logger: logger, events: log.NoopLogger{}}
	for _, opt := range opts {
		opt(disp)
	}
	return disp
}

// Dispatch runs one request.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Response {
	result, err := d.run(ctx, req)
	if err != nil {
		env := envelope(err)
		d.logger.Debug("command failed", "command", req.Command, "id", req.ID, "error", err)
		d.events.Log(log.Event{
			Timestamp: time.Now(),
			Layer:     log.LayerCommand,
			Category:  log.CategoryError,
			Error: &log.ErrorEventData{
				Layer:   log.LayerCommand,
				Message: env.Message,
				Code:    string(env.Code),
				Context: req.Command,
			},
		})
		return Response{ID: req.ID, Error: env}
	}
	return Response{ID: req.ID, Result: result}
}

func (d *Dispatcher) run(ctx context.Context, req Request) (any, error) {
	switch req.Command {
	case GetAvailability:
		return d.d.GetAvailability(ctx)

	case RequestDevice:
		args := req.Args
		if len(args) == 0 {
			args = json.RawMessage("{}")
		}
		opts, err := filter.ParseRequestDeviceOptions(args)
		if err != nil {
			return nil, err
		}
		return d.d.RequestDevice(ctx, opts)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, req.Command)
	}
}

// Handle decodes a JSON request, runs it and encodes the response.
func (d *Dispatcher) Handle(ctx context.Context, data []byte) []byte {
	var resp Response
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		resp = Response{Error: envelope(fmt.Errorf("%w: %v", ErrBadRequest, err))}
	} else {
		resp = d.Dispatch(ctx, req)
	}

	out, err := json.Marshal(resp)
	if err != nil {
		// Results are plain structs; this only trips on a broken Discoverer.
		out, _ = json.Marshal(Response{ID: resp.ID, Error: envelope(err)})
	}
	return out
}

// Serve handles newline-delimited requests from r until r is exhausted or
// ctx is done, writing one response line per request to w. Requests run
// concurrently, so responses may arrive out of order and are correlated
// by ID. Serve returns once every in-flight request has answered.
func (d *Dispatcher) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex // guards w

	for sc.Scan() {
		if gctx.Err() != nil {
			break
		}
		line := bytes.Clone(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		g.Go(func() error {
			out := d.Handle(gctx, line)

			mu.Lock()
			defer mu.Unlock()
			_, err := w.Write(append(out, '\n'))
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return sc.Err()
}

func envelope(err error) *Error {
	code := ble.CodeOf(err)
	switch {
	case errors.Is(err, ErrBadRequest):
		code = CodeBadRequest
	case errors.Is(err, ErrUnknownCommand):
		code = CodeUnknownCommand
	}
	return &Error{Code: code, Message: err.Error()}
}
