// Copyright 2026 The reqcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package session defines the transport session contract consumed by
// the request lifecycle, plus two factory implementations: an HTTP
// factory over any Doer, and a pooling decorator that recycles idle
// sessions.
//
// A Session is an opaque, possibly-reused handle to a live or
// about-to-be-established transport exchange. The lifecycle configures
// it with a verb, a target, outbound headers, and three narrow
// callback roles, then drives it with Step until the exchange is
// complete. Sessions are obtained from and returned to a Factory; the
// lifecycle owns at most one at a time and releases it exactly once.
package session

import (
	"net/url"
	"time"

	"github.com/reqcore/reqcore/headerline"
)

// A HeaderSink receives inbound raw response header lines, one at a
// time, in arrival order. The bare line terminator ending the header
// block is delivered like any other line; interception of that
// sentinel is the sink's concern.
type HeaderSink interface {
	FeedHeaderLine(line string)
}

// A BodySink receives inbound response body bytes in arrival order.
type BodySink interface {
	Feed(p []byte)
}

// A BodySource produces outbound request body bytes on demand. A
// return of 0 from PullBytes signals end of body; a negative return
// signals a producer-side error, which the transport treats as end of
// body.
type BodySource interface {
	PullBytes(p []byte) int
}

// A Config carries everything a Session needs to perform one exchange.
type Config struct {
	// Verb is the HTTP method to send.
	Verb string
	// Target is the URL to access.
	Target *url.URL
	// Headers is the ordered outbound header sequence. Duplicates and
	// insertion order are preserved.
	Headers []headerline.Header
	// HeaderSink receives inbound raw header lines. It must not be
	// nil.
	HeaderSink HeaderSink
	// BodySink receives inbound body bytes. It must not be nil.
	BodySink BodySink
	// BodySource produces outbound body bytes. It may be nil if the
	// request has no body.
	BodySource BodySource
	// ContentLength is the outbound body length in bytes, or -1 if it
	// is unknown. It is ignored when BodySource is nil.
	ContentLength int64
}

// Params carries transport configuration shared by every session a
// factory provides for one request.
type Params struct {
	// OperationTimeout bounds one whole exchange. Zero means no
	// transport-level bound.
	OperationTimeout time.Duration
	// ConnectTimeout bounds connection establishment where the
	// underlying transport supports it. Zero means no bound.
	ConnectTimeout time.Duration
	// ReadBufferSize is the chunk size used when streaming the
	// response body into the BodySink. Zero selects a default.
	ReadBufferSize int
	// MaxIdleSessions caps the number of idle sessions a pooling
	// factory retains per target. Zero selects a default.
	MaxIdleSessions int
}

const (
	defaultReadBufferSize  = 32 * 1024
	defaultMaxIdleSessions = 4
)

// DefaultParams returns the parameters used when a request supplies
// none.
func DefaultParams() *Params {
	return &Params{
		ReadBufferSize:  defaultReadBufferSize,
		MaxIdleSessions: defaultMaxIdleSessions,
	}
}

func (p *Params) readBufferSize() int {
	if p == nil || p.ReadBufferSize <= 0 {
		return defaultReadBufferSize
	}
	return p.ReadBufferSize
}

func (p *Params) maxIdleSessions() int {
	if p == nil || p.MaxIdleSessions <= 0 {
		return defaultMaxIdleSessions
	}
	return p.MaxIdleSessions
}

// A Session is an opaque transport handle performing one exchange at a
// time.
type Session interface {
	// Configure prepares the session for one exchange. Calling
	// Configure on a recycled session resets any state left over from
	// the previous exchange.
	Configure(cfg *Config) error

	// Step advances the exchange and reports whether it is complete.
	// The lifecycle calls Step in a loop until done is true. A non-nil
	// err indicates a transport-level failure; the exchange is over
	// when one is returned.
	Step() (done bool, err error)

	// StatusCode returns the numeric response status, or 0 if none has
	// been received.
	StatusCode() int

	// Recycled reports whether the session was reused from a pool
	// rather than newly established.
	Recycled() bool

	// LastError returns the last transport-level error string observed
	// on this session, or the empty string if none.
	LastError() string
}

// A Factory provides sessions and takes them back.
//
// Provide may reuse a pooled session or establish a new one; which
// happened is visible through Session.Recycled. Release returns a
// session to the factory; with discard set the factory must dispose of
// the session rather than pool it.
type Factory interface {
	Provide(target *url.URL, params *Params) (Session, error)
	Release(s Session, discard bool)
}
