// Copyright 2026 The reqcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"

	"github.com/reqcore/reqcore/headerline"
	"github.com/reqcore/reqcore/status"
)

const scope = "reqcore/session"

// A Doer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type Doer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// Doer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// An HTTPFactory provides sessions whose exchanges are carried out by
// a Doer. Its zero value uses http.DefaultClient.
//
// An HTTPFactory performs no pooling of its own; the Doer's transport
// keeps its usual connection cache, and the pooling Factory decorator
// (NewPool) can be layered on top when session-level recycling is
// wanted.
type HTTPFactory struct {
	// Client specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If Client is nil, http.DefaultClient from the standard net/http
	// package is used.
	Client Doer
}

// Provide implements Factory. It never fails for a well-formed target;
// connection establishment is deferred to the first Step.
func (f *HTTPFactory) Provide(target *url.URL, params *Params) (Session, error) {
	if target == nil {
		return nil, status.New(scope, status.SessionCreation, "nil target")
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, status.New(scope, status.SessionCreation,
			"target missing scheme or host: "+target.String())
	}
	return &httpSession{client: f.client(), params: params}, nil
}

// Release implements Factory. Nothing is pooled at this level, so
// Release has no effect beyond letting the session go.
func (f *HTTPFactory) Release(s Session, discard bool) {}

func (f *HTTPFactory) client() Doer {
	if f.Client == nil {
		return http.DefaultClient
	}
	return f.Client
}

// An httpSession performs one whole exchange on the first Step call:
// it sends the request through the Doer, replays the response header
// lines into the HeaderSink (terminator sentinel last), and streams
// the body into the BodySink.
type httpSession struct {
	client  Doer
	params  *Params
	cfg     *Config
	done    bool
	code    int
	lastErr string
}

func (s *httpSession) Configure(cfg *Config) error {
	if cfg == nil {
		return status.New(scope, status.InvalidArgument, "nil config")
	}
	if cfg.Target == nil || cfg.HeaderSink == nil || cfg.BodySink == nil {
		return status.New(scope, status.InvalidArgument,
			"config requires a target, a header sink, and a body sink")
	}
	s.cfg = cfg
	s.done = false
	s.code = 0
	s.lastErr = ""
	return nil
}

func (s *httpSession) Step() (bool, error) {
	if s.done {
		return true, nil
	}
	if s.cfg == nil {
		return true, status.New(scope, status.InvalidArgument, "session not configured")
	}
	s.done = true
	err := s.exchange()
	if err != nil {
		s.lastErr = err.Error()
	}
	return true, err
}

func (s *httpSession) exchange() error {
	ctx := context.Background()
	if s.params != nil && s.params.OperationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.params.OperationTimeout)
		defer cancel()
	}

	r, err := s.request(ctx)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(r)
	if err != nil {
		return err
	}
	s.code = resp.StatusCode
	s.replayHeaders(resp)
	return s.readBody(resp)
}

func (s *httpSession) request(ctx context.Context) (*http.Request, error) {
	r, err := http.NewRequest(s.cfg.Verb, s.cfg.Target.String(), nil)
	if err != nil {
		return nil, err
	}
	r = r.WithContext(ctx)
	for _, h := range s.cfg.Headers {
		r.Header.Add(h.Name, h.Value)
	}
	if s.cfg.BodySource != nil {
		r.Body = ioutil.NopCloser(&pullReader{src: s.cfg.BodySource})
		if s.cfg.ContentLength >= 0 {
			r.ContentLength = s.cfg.ContentLength
		}
	}
	return r, nil
}

// replayHeaders delivers the response headers to the HeaderSink as raw
// lines, ending with the bare-terminator sentinel. Values repeated
// under one name keep their order; ordering across distinct names is
// not preserved by the net/http header map.
func (s *httpSession) replayHeaders(resp *http.Response) {
	for name, values := range resp.Header {
		for _, value := range values {
			s.cfg.HeaderSink.FeedHeaderLine(
				headerline.Format(headerline.Header{Name: name, Value: value}) + "\r\n")
		}
	}
	s.cfg.HeaderSink.FeedHeaderLine("\r\n")
}

func (s *httpSession) readBody(resp *http.Response) error {
	defer func() {
		_ = resp.Body.Close()
	}()
	buf := make([]byte, s.params.readBufferSize())
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			s.cfg.BodySink.Feed(buf[:n])
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *httpSession) StatusCode() int {
	return s.code
}

func (s *httpSession) Recycled() bool {
	return false
}

func (s *httpSession) LastError() string {
	return s.lastErr
}

// A pullReader adapts a BodySource to io.Reader for net/http. A
// negative pull result is mapped to end of body, matching the
// lifecycle's treatment of producer-side errors.
type pullReader struct {
	src BodySource
}

func (r *pullReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := r.src.PullBytes(p)
	if n <= 0 {
		return 0, io.EOF
	}
	return n, nil
}
