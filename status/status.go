// Copyright 2026 The reqcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package status

import (
	"errors"
	"fmt"
)

// A Code classifies a request lifecycle failure. Every error produced
// by the reqcore packages carries exactly one Code.
type Code int

const (
	// AlreadyRunning indicates an operation requiring an active
	// session was invoked before Start succeeded, or after the session
	// was released.
	AlreadyRunning Code = iota + 1
	// OperationTimeout indicates the request deadline elapsed. It is
	// checked on entry to Start and on entry to every ReadBlock.
	OperationTimeout
	// InvalidArgument indicates a lookup with no active session, or a
	// lookup whose subject (such as a Location header) is absent.
	InvalidArgument
	// UriParsingError indicates a URI value could not be parsed. It is
	// surfaced from the URL parser, never generated independently.
	UriParsingError
	// SessionCreation indicates the session factory could not provide
	// a session. The factory's own error is preserved as the cause.
	SessionCreation
	// TransportError indicates a transport-level failure observed
	// while driving an exchange.
	TransportError
)

var codeNames = map[Code]string{
	AlreadyRunning:   "AlreadyRunning",
	OperationTimeout: "OperationTimeout",
	InvalidArgument:  "InvalidArgument",
	UriParsingError:  "UriParsingError",
	SessionCreation:  "SessionCreation",
	TransportError:   "TransportError",
}

// String returns the name of the code.
func (c Code) String() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// An Error is a classified request lifecycle failure. All failures in
// this module are returned as values of this type; none are panics.
type Error struct {
	// Scope names the component that produced the error, for example
	// "reqcore" or "reqcore/session".
	Scope string
	// Code is the failure classification.
	Code Code
	// Message is a human-readable description.
	Message string

	cause error
}

// New returns an error with the given scope, code, and message.
func New(scope string, code Code, message string) *Error {
	return &Error{Scope: scope, Code: code, Message: message}
}

// Wrap returns an error with the given scope, code, and message, whose
// cause is err. The cause is reachable through errors.Unwrap.
func Wrap(scope string, code Code, message string, err error) *Error {
	return &Error{Scope: scope, Code: code, Message: message, cause: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return e.Scope + ": " + e.Message + ": " + e.cause.Error()
	}
	return e.Scope + ": " + e.Message
}

// Unwrap returns the wrapped cause, or nil.
func (e *Error) Unwrap() error {
	return e.cause
}

// Timeout reports whether the error represents a deadline expiry. The
// method satisfies the Timeout() interface convention used by net/url
// and by the transient categorizer.
func (e *Error) Timeout() bool {
	return e.Code == OperationTimeout
}

// CodeOf returns the classification of err. The second return value is
// false if err is nil or carries no *status.Error in its chain.
func CodeOf(err error) (Code, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Code, true
	}
	return 0, false
}

// Is reports whether err carries the given code. It is a convenience
// over CodeOf for single-code checks.
func Is(err error, code Code) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}
