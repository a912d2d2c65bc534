package ble

import (
	"context"
	"errors"
)

// Code is a stable, serializable error identifier.
type Code string

// Error codes surfaced to callers.
const (
	CodeInvalidOptions     Code = "INVALID_OPTIONS"
	CodeNoAdapter          Code = "NO_ADAPTER"
	CodeAdapterUnavailable Code = "ADAPTER_UNAVAILABLE"
	CodeScanStartFailure   Code = "SCAN_START_FAILURE"
	CodeScanStopFailure    Code = "SCAN_STOP_FAILURE"
	CodeDeviceNotFound     Code = "DEVICE_NOT_FOUND"
	CodeScanInProgress     Code = "SCAN_IN_PROGRESS"
	CodeCancelled          Code = "CANCELLED"
	CodeClosed             Code = "CLOSED"
	CodeUnknown            Code = "UNKNOWN"
)

// Discovery errors. Hardware failures wrap the underlying cause, so
// callers should test with errors.Is.
var (
	ErrInvalidOptions     = errors.New("invalid request device options")
	ErrNoAdapter          = errors.New("no available bluetooth adapter")
	ErrAdapterUnavailable = errors.New("bluetooth adapter unavailable")
	ErrScanStartFailure   = errors.New("scan start failure")
	ErrScanStopFailure    = errors.New("scan stop failure")
	ErrDeviceNotFound     = errors.New("device not found")
	ErrScanInProgress     = errors.New("scan already in progress on adapter")
	ErrClosed             = errors.New("discovery manager closed")
)

// codeTable is checked in order; the first match wins.
var codeTable = []struct {
	err  error
	code Code
}{
	{ErrInvalidOptions, CodeInvalidOptions},
	{ErrInvalidUUID, CodeInvalidOptions},
	{ErrNoAdapter, CodeNoAdapter},
	{ErrAdapterUnavailable, CodeAdapterUnavailable},
	{ErrScanStartFailure, CodeScanStartFailure},
	{ErrScanStopFailure, CodeScanStopFailure},
	{ErrDeviceNotFound, CodeDeviceNotFound},
	{ErrScanInProgress, CodeScanInProgress},
	{ErrClosed, CodeClosed},
	{context.Canceled, CodeCancelled},
}

// CodeOf maps err to its stable code. Errors outside the taxonomy (for
// example transport errors from a native stack) map to CodeUnknown.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	for _, e := range codeTable {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return CodeUnknown
}
