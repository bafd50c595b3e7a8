// File: api/errors.go
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-txtime.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotSupported    = errors.New("operation not supported")

	// ErrShortSend is returned when the stack accepted fewer bytes than the payload holds.
	ErrShortSend = errors.New("short send")
	// ErrQueueReceive wraps a failed recvmsg on the socket error queue.
	ErrQueueReceive = errors.New("error queue receive failed")
	// ErrMalformedNotification means a pending notification carried no extended error.
	ErrMalformedNotification = errors.New("malformed error queue notification")
	// ErrUnclassifiedCompletion covers every origin/code pair that is not a known drop.
	ErrUnclassifiedCompletion = errors.New("unclassified completion")
	// ErrBenignDrop is only surfaced when a dispatcher runs with strict drops.
	ErrBenignDrop = errors.New("scheduled frame dropped")
	// ErrTransportMismatch is returned when a publish variant does not match the channel.
	ErrTransportMismatch = errors.New("transport mismatch")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeNotSupported
	ErrCodeInternal
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap maps the code onto the matching sentinel so errors.Is keeps working.
func (e *Error) Unwrap() error {
	switch e.Code {
	case ErrCodeInvalidArgument:
		return ErrInvalidArgument
	case ErrCodeNotSupported:
		return ErrNotSupported
	default:
		return nil
	}
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
