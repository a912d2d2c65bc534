package ble

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	cause := errors.New("hci0: operation not permitted")

	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"Nil", nil, ""},
		{"InvalidOptions", ErrInvalidOptions, CodeInvalidOptions},
		{"WrappedInvalidUUID", fmt.Errorf("filters[0]: %w", ErrInvalidUUID), CodeInvalidOptions},
		{"NoAdapter", ErrNoAdapter, CodeNoAdapter},
		{"ScanStartWithCause", fmt.Errorf("%w: %w", ErrScanStartFailure, cause), CodeScanStartFailure},
		{"ScanStop", fmt.Errorf("%w: %w", ErrScanStopFailure, cause), CodeScanStopFailure},
		{"DeviceNotFound", ErrDeviceNotFound, CodeDeviceNotFound},
		{"Busy", ErrScanInProgress, CodeScanInProgress},
		{"Closed", ErrClosed, CodeClosed},
		{"Cancelled", fmt.Errorf("scan: %w", context.Canceled), CodeCancelled},
		{"PassThrough", cause, CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestScanFailureKeepsCause(t *testing.T) {
	cause := errors.New("org.bluez.Error.NotReady")
	err := fmt.Errorf("%w: %w", ErrScanStartFailure, cause)

	assert.ErrorIs(t, err, ErrScanStartFailure)
	assert.ErrorIs(t, err, cause)
}
