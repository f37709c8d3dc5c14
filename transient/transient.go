// Copyright 2026 The reqcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"errors"
	"syscall"
)

// A Category is the transience category of a particular error, as
// reported by function Categorize().
//
// The category Not means the error is not transient from the
// perspective of completing an exchange successfully, or in other
// words that repeating the exchange after encountering this error is
// very unlikely to succeed.
//
// All other categories indicate the error is transient: a fresh
// request built against the same target has some prospect of success.
type Category int

const (
	// Not indicates any non-transient error.
	Not Category = iota
	// Timeout indicates a client-side timeout: either the request
	// deadline elapsed, or the transport's own operation timeout
	// fired.
	//
	// Function Categorize() will return Timeout if the error or any of
	// its wrapped causes has a Timeout() function that reports true.
	// The *status.Error type produced on deadline expiry satisfies
	// this.
	Timeout
	// ConnRefused indicates the remote host refused the connection,
	// and corresponds to the POSIX error code ECONNREFUSED.
	//
	// Connection refusal can happen if the service on the remote host
	// is in the process of starting or restarting, so it is classified
	// as transient even though it may also be a permanent condition.
	//
	// Function Categorize() will return ConnRefused if the error is
	// not a Timeout, and the error or any of its wrapped causes is
	// equal to syscall.ECONNREFUSED.
	ConnRefused
	// ConnReset indicates the remote host returned an RST packet on a
	// previously active TCP connection, and corresponds to the POSIX
	// error code ECONNRESET.
	//
	// A reset frequently means the connection underlying a pooled
	// session went stale while idle, which is why a session whose
	// exchange ended in a reset must never be returned to the pool.
	//
	// Function Categorize() will return ConnReset if the error is not
	// a Timeout, and the error or any of its wrapped causes is equal
	// to syscall.ECONNRESET.
	ConnReset
)

// Categorize returns the transience category of the given error. A nil
// error, and an error that is not transient from the perspective of
// completing an exchange, both produce the return value Not.
//
// In assessing transience, Categorize looks at wrapped cause errors
// contained within err, not just err itself. However, Categorize never
// checks if an error has a Temporary() function that returns true, as
// the semantics of Temporary() aren't entirely clear.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	return Not
}

// DiscardSession reports whether a transport session whose exchange
// ended with err must be disposed of rather than returned to the
// session pool. Any non-nil error disqualifies the session from
// reuse: after a reset, a refusal, or a half-finished exchange the
// connection state is unknown.
func DiscardSession(err error) bool {
	return err != nil
}

type hasTimeout interface {
	Timeout() bool
}
