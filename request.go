// Copyright 2026 The reqcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqcore

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/http/httpguts"

	"github.com/reqcore/reqcore/content"
	"github.com/reqcore/reqcore/deadline"
	"github.com/reqcore/reqcore/headerline"
	"github.com/reqcore/reqcore/session"
	"github.com/reqcore/reqcore/sink"
	"github.com/reqcore/reqcore/status"
	"github.com/reqcore/reqcore/transient"
)

const scope = "reqcore"

// A State is the lifecycle state of a Request. States advance
// monotonically and never regress.
type State int

const (
	// NotStarted is the state of a Request before Start has succeeded.
	NotStarted State = iota
	// Started is the state of a Request after Start has driven the
	// exchange to completion.
	Started
	// Finished is the state of a Request after EndRequest. No
	// transition leaves Finished.
	Finished
)

var stateNames = []string{"NotStarted", "Started", "Finished"}

// String returns the name of the state.
func (s State) String() string {
	return stateNames[int(s)]
}

// A Flag is a bit set of request behavior flags passed through to the
// transport. Flags do not alter the core lifecycle semantics.
type Flag int

const (
	// FlagNone is the empty flag set.
	FlagNone Flag = 0
	// FlagSupportContinue100 indicates the transport may use an
	// Expect: 100-continue handshake before sending the request body.
	FlagSupportContinue100 Flag = 0x01
	// FlagIdempotencyDisabled indicates the request must not be
	// treated as idempotent by any layer built on top of the engine.
	FlagIdempotencyDisabled Flag = 0x02
)

var emptyHandlers = HandlerGroup{}

// Options carries the optional construction inputs of a Request. The
// zero value is valid: no outbound headers, no request body, no
// deadline, no hooks, default transport parameters, and no session
// reuse.
type Options struct {
	// ReuseSession indicates the session may be returned to the
	// factory's pool when the request ends. When false, the session is
	// always discarded at release.
	ReuseSession bool

	// Hooks is the instrumentation handler group. It is opaque to the
	// request execution semantics. If Hooks is nil, no handlers run.
	Hooks *HandlerGroup

	// Params carries transport configuration such as timeouts and
	// buffer sizing. If Params is nil, session.DefaultParams() is
	// used.
	Params *session.Params

	// Headers is the ordered outbound header sequence. Duplicates and
	// insertion order are preserved exactly as given.
	Headers []headerline.Header

	// Flags is an opaque set of request behavior flags.
	Flags Flag

	// Source is the pull-based producer of the outbound request body,
	// or nil if the request has no body. The Source is borrowed, not
	// owned: it must outlive the Request, and it must not be shared
	// with another concurrently active Request.
	Source content.Source

	// Deadline is the absolute deadline bounding Start and each
	// ReadBlock. The zero Guard means the request never times out.
	Deadline deadline.Guard
}

// A Request executes one outbound HTTP exchange: it acquires a
// transport session, attaches headers, streams the optional request
// body from its content source, captures response headers and status,
// buffers the whole response body, and enforces its deadline.
//
// A Request is single-use. Once it is Finished, or once any
// non-timeout error has occurred, it must be discarded, not restarted.
// A Request performs no internal locking and must not be shared
// concurrently across goroutines without external synchronization.
type Request struct {
	factory  session.Factory
	reuse    bool
	hooks    *HandlerGroup
	verb     string
	target   *url.URL
	params   *session.Params
	headers  []headerline.Header
	flags    Flag
	source   content.Source
	deadline deadline.Guard

	state       State
	sess        session.Session
	respHeaders []headerline.Header
	headersDone bool
	body        sink.Buffer
	discard     bool
	sessErr     string
}

// New returns a Request ready to Start.
//
// The factory provides the transport session the request will run on;
// it must not be nil. An empty verb means GET. The verb and every
// outbound header are validated against the RFC 7230 token and field
// grammars; a Request that fails validation is never constructed, so
// Start itself has no preconditions beyond construction.
func New(factory session.Factory, verb string, target *url.URL, opts Options) (*Request, error) {
	if factory == nil {
		return nil, status.New(scope, status.InvalidArgument, "nil session factory")
	}
	if target == nil {
		return nil, status.New(scope, status.InvalidArgument, "nil target")
	}
	if verb == "" {
		verb = "GET"
	}
	if !httpguts.ValidHeaderFieldName(verb) {
		return nil, status.New(scope, status.InvalidArgument, "invalid verb "+strconv.Quote(verb))
	}
	for _, h := range opts.Headers {
		if !httpguts.ValidHeaderFieldName(h.Name) {
			return nil, status.New(scope, status.InvalidArgument,
				"invalid header name "+strconv.Quote(h.Name))
		}
		if !httpguts.ValidHeaderFieldValue(h.Value) {
			return nil, status.New(scope, status.InvalidArgument,
				"invalid value for header "+strconv.Quote(h.Name))
		}
	}

	params := opts.Params
	if params == nil {
		params = session.DefaultParams()
	}
	hooks := opts.Hooks
	if hooks == nil {
		hooks = &emptyHandlers
	}
	headers := make([]headerline.Header, len(opts.Headers))
	copy(headers, opts.Headers)

	return &Request{
		factory:  factory,
		reuse:    opts.ReuseSession,
		hooks:    hooks,
		verb:     verb,
		target:   target,
		params:   params,
		headers:  headers,
		flags:    opts.Flags,
		source:   opts.Source,
		deadline: opts.Deadline,
	}, nil
}

// Start acquires a session and drives the transport exchange to
// completion. When Start returns nil, the response status, the full
// response header sequence, and the entire response body are resident
// in the Request, ready for StatusCode, AnswerHeader, and ReadBlock.
//
// Start is idempotent: once the request has left the NotStarted state,
// a repeat call is a silent no-op returning nil.
//
// If the deadline has already elapsed, Start fails with an
// OperationTimeout error, no session is acquired, and the state stays
// NotStarted. A session factory failure is surfaced verbatim and also
// leaves the state at NotStarted; retry is then permitted, since the
// request never left NotStarted.
//
// Start is a synchronous, potentially long-running call. There is no
// cancellation primitive other than deadline expiry. Transport-level
// errors encountered while driving the exchange are not surfaced by
// Start; they are recorded and available through SessionError, and
// they mark the session for discard at release.
func (r *Request) Start() error {
	if r.state != NotStarted {
		return nil
	}

	r.hooks.run(BeforeStart, r)

	if err := r.CheckTimeout(); err != nil {
		return err
	}

	sess, err := r.factory.Provide(r.target, r.params)
	if err != nil {
		return err
	}
	r.sess = sess
	r.hooks.run(AfterSessionAcquire, r)

	cfg := &session.Config{
		Verb:          r.verb,
		Target:        r.target,
		Headers:       r.headers,
		HeaderSink:    (*headerFeed)(r),
		BodySink:      &r.body,
		ContentLength: -1,
	}
	if r.source != nil {
		if err := r.source.Rewind(); err != nil {
			r.abandonSession()
			return status.Wrap(scope, status.InvalidArgument,
				"could not rewind content source", err)
		}
		cfg.BodySource = r.source
		cfg.ContentLength = r.source.Length()
	}
	if err := sess.Configure(cfg); err != nil {
		r.abandonSession()
		return err
	}

	r.drive()

	r.state = Started
	r.hooks.run(AfterStart, r)
	return nil
}

// drive is the cooperative polling loop: it repeatedly asks the
// session to make progress until the session reports the exchange
// complete. A mid-drive transport error ends the loop; it is recorded
// as the session-error diagnostic rather than surfaced, and the
// session is marked for discard.
func (r *Request) drive() {
	for {
		done, err := r.sess.Step()
		if err != nil {
			r.sessErr = err.Error()
			if transient.DiscardSession(err) {
				r.discard = true
			}
			return
		}
		if done {
			return
		}
	}
}

// abandonSession releases a session acquired by a Start attempt that
// failed before the exchange was driven, keeping the state at
// NotStarted without leaking the session.
func (r *Request) abandonSession() {
	r.factory.Release(r.sess, true)
	r.sess = nil
}

// ReadBlock removes up to len(p) bytes from the front of the buffered
// response body, copies them into p, and returns the number of bytes
// read. Bytes are delivered in original arrival order.
//
// ReadBlock never blocks: the full body is resident by the time Start
// returns, so a return of 0 bytes with a nil error unambiguously
// signals the end of the body.
//
// ReadBlock fails with an AlreadyRunning-kind error if no session is
// active (the request was never started, or has ended), and with an
// OperationTimeout error if the request deadline has elapsed. A
// zero-length p returns 0 immediately without a deadline check.
func (r *Request) ReadBlock(p []byte) (int, error) {
	if r.sess == nil {
		return 0, status.New(scope, status.AlreadyRunning,
			"request has not been started yet")
	}
	if len(p) == 0 {
		return 0, nil
	}
	if err := r.CheckTimeout(); err != nil {
		return 0, err
	}
	return r.body.Consume(p), nil
}

// EndRequest transitions the request to the Finished state and
// releases the session back to the factory. It always succeeds and is
// idempotent; the session is released exactly once.
//
// The session is discarded rather than pooled if the reuse preference
// is off, DoNotReuseSession was called, or a transport error occurred
// while driving the exchange.
func (r *Request) EndRequest() error {
	if r.sess != nil {
		r.factory.Release(r.sess, r.discard || !r.reuse)
		r.sess = nil
	}
	if r.state != Finished {
		r.state = Finished
		r.hooks.run(AfterEnd, r)
	}
	return nil
}

// State returns the current lifecycle state.
func (r *Request) State() State {
	return r.state
}

// CheckTimeout reports whether the request deadline has elapsed,
// comparing the monotonic clock against the deadline guard. It returns
// nil if the deadline has not passed or the request has no deadline,
// and an OperationTimeout error otherwise. Start and ReadBlock invoke
// it on entry.
func (r *Request) CheckTimeout() error {
	if r.deadline.Expired() {
		return status.New(scope, status.OperationTimeout,
			"timeout of "+r.params.OperationTimeout.String())
	}
	return nil
}

// StatusCode returns the numeric response status reported by the
// active session, or 0 if no session is active (the request was never
// started, or has ended).
func (r *Request) StatusCode() int {
	if r.sess == nil {
		return 0
	}
	return r.sess.StatusCode()
}

// AnswerHeader returns the value of the first accumulated response
// header whose name is exactly equal to name, and whether one was
// found.
//
// The comparison is an exact byte-for-byte match, not case-insensitive;
// this is a documented limitation of the header lookup. The
// case-insensitive lookup used for redirects is RedirectedLocation.
func (r *Request) AnswerHeader(name string) (string, bool) {
	for _, h := range r.respHeaders {
		if h.Name == name {
			return h.Value, true
		}
	}
	return "", false
}

// AnswerHeaders returns a snapshot copy of the accumulated response
// header sequence, in arrival order with duplicates preserved.
func (r *Request) AnswerHeaders() []headerline.Header {
	out := make([]headerline.Header, len(r.respHeaders))
	copy(out, r.respHeaders)
	return out
}

// AnswerHeadersComplete reports whether the header-terminator sentinel
// has been observed, freezing the response header sequence.
func (r *Request) AnswerHeadersComplete() bool {
	return r.headersDone
}

// RedirectedLocation finds the redirect target among the response
// headers and parses it into a URL.
//
// The "Location" header is matched case-insensitively, unlike
// AnswerHeader. RedirectedLocation fails with an InvalidArgument error
// if no session is active or no matching header exists, and with a
// UriParsingError if the header value cannot be parsed. The engine
// only extracts the redirect target, it never follows it.
func (r *Request) RedirectedLocation() (*url.URL, error) {
	if r.sess == nil {
		return nil, status.New(scope, status.InvalidArgument,
			"request not active, impossible to obtain redirected location")
	}
	for _, h := range r.respHeaders {
		if strings.EqualFold(h.Name, "location") {
			u, err := url.Parse(h.Value)
			if err != nil {
				return nil, status.Wrap(scope, status.UriParsingError,
					"malformed Location header", err)
			}
			return u, nil
		}
	}
	return nil, status.New(scope, status.InvalidArgument,
		"could not find Location header in answer headers")
}

// ReadResponseHeaders blocks until all response headers have been
// received. Because Start drives the exchange to full completion
// before returning, the header block is always complete once a session
// is active, and the call reduces to an active-session check: it fails
// with an AlreadyRunning-kind error if no session is active and
// returns nil otherwise.
func (r *Request) ReadResponseHeaders() error {
	if r.sess == nil {
		return status.New(scope, status.AlreadyRunning,
			"request has not been started yet")
	}
	return nil
}

// DoNotReuseSession marks the session for discard instead of pool
// return when it is released.
func (r *Request) DoNotReuseSession() {
	r.discard = true
}

// IsRecycledSession reports whether the active session was reused from
// the factory's pool rather than newly established. It returns false
// when no session is active.
func (r *Request) IsRecycledSession() bool {
	return r.sess != nil && r.sess.Recycled()
}

// SessionError returns the last transport-level error string observed
// while driving the exchange, or the empty string if none. The value
// survives EndRequest.
func (r *Request) SessionError() string {
	return r.sessErr
}

// Flags returns the request's behavior flag set.
func (r *Request) Flags() Flag {
	return r.flags
}

// A headerFeed adapts a Request into the HeaderSink capability handed
// to the session: it intercepts the header-terminator sentinel, and
// parses every other raw line into the response header sequence. Lines
// arriving after the sentinel are dropped, keeping the sequence
// frozen.
type headerFeed Request

func (f *headerFeed) FeedHeaderLine(line string) {
	r := (*Request)(f)
	if r.headersDone {
		return
	}
	if strings.Trim(line, "\r\n") == "" {
		r.headersDone = true
		r.hooks.run(AfterHeaderBlock, r)
		return
	}
	r.respHeaders = append(r.respHeaders, headerline.Parse(line))
}
