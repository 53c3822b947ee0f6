// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Luminos Hardware

package alarmclock

import (
	"errors"
	"fmt"
)

// ErrorCode is a status code returned by the clock CLI. The codes are
// bit-flag style; firmware revisions may introduce codes this driver does
// not know, so unrecognized values are carried through rather than rejected.
type ErrorCode int

const (
	CodeOk              ErrorCode = 0
	CodeArgumentError   ErrorCode = 1
	CodeNothingSelected ErrorCode = 2
	CodeUselessSave     ErrorCode = 4
	CodeNotFound        ErrorCode = 8
	CodeUnsupported     ErrorCode = 16
)

func (c ErrorCode) String() string {
	switch c {
	case CodeOk:
		return "Ok"
	case CodeArgumentError:
		return "ArgumentError"
	case CodeNothingSelected:
		return "NothingSelected"
	case CodeUselessSave:
		return "UselessSave"
	case CodeNotFound:
		return "NotFound"
	case CodeUnsupported:
		return "Unsupported"
	default:
		return fmt.Sprintf("Unknown(0x%02X)", int(c))
	}
}

var (
	// ErrInvalidArgument reports a host-side validation failure. No bytes
	// were sent to the device.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingField reports a required key absent from a decoded document.
	ErrMissingField = errors.New("missing field")

	// ErrPromptTimeout reports that the device did not produce a prompt
	// within the configured number of reads. Outside of connection setup
	// the session must be considered desynchronized and discarded.
	ErrPromptTimeout = errors.New("prompt timeout")
)

// CommandError is a non-Ok status returned by the clock for a command.
type CommandError struct {
	Code ErrorCode
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("clock returned error: %s", e.Code)
}

// IsCode reports whether err is a CommandError carrying the given code.
// Useful for tolerating expected-benign codes such as CodeUselessSave.
func IsCode(err error, code ErrorCode) bool {
	var ce *CommandError
	return errors.As(err, &ce) && ce.Code == code
}

// DesyncError reports that the prompt did not echo the expected alarm
// selection after a select/query pair. This indicates a firmware bug or
// concurrent use of the connection and is not recoverable.
type DesyncError struct {
	Want string
	Got  string
}

func (e *DesyncError) Error() string {
	return fmt.Sprintf("clock prompt is incorrect: got %q, want %q", e.Got, e.Want)
}
