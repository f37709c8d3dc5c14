// Copyright 2026 The reqcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqcore

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Request to observe its
// lifecycle with custom instrumentation. Events are opaque to the
// request execution semantics: handlers observe, they do not steer.
type Event int

const (
	// BeforeStart identifies the event that occurs when Start is
	// called on a request that has not started yet, before the
	// deadline pre-check and before a session is acquired.
	BeforeStart Event = iota
	// AfterSessionAcquire identifies the event that occurs after the
	// session factory has provided a session, before the transport
	// exchange is driven. IsRecycledSession is meaningful from this
	// point on.
	AfterSessionAcquire
	// AfterHeaderBlock identifies the event that occurs when the
	// header-terminator sentinel arrives, freezing the response header
	// sequence. The response body may not be fully buffered yet.
	AfterHeaderBlock
	// AfterStart identifies the event that occurs when Start
	// completes: the exchange has been driven to completion and the
	// full response body is resident in the request.
	AfterStart
	// AfterEnd identifies the event that occurs when EndRequest first
	// transitions the request to the Finished state. The session has
	// already been released when the event fires, so session-dependent
	// accessors report their inactive values.
	AfterEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events typed as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeStart",
	"AfterSessionAcquire",
	"AfterHeaderBlock",
	"AfterStart",
	"AfterEnd",
}

// Events returns a slice containing all events which can occur during
// a request lifecycle, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeStart,
		AfterSessionAcquire,
		AfterHeaderBlock,
		AfterStart,
		AfterEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
