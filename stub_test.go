// Copyright 2026 The reqcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqcore

import (
	"errors"
	"net/url"

	"github.com/reqcore/reqcore/content"
	"github.com/reqcore/reqcore/session"
)

// A stubSession scripts one exchange: it deliberately takes several
// Step calls to complete so the tests exercise the cooperative polling
// loop, delivering headers first, then draining the body source, then
// feeding the response body.
type stubSession struct {
	code     int
	headers  []string
	trailer  []string
	body     []string
	stepErr  error
	recycled bool

	cfg        *session.Config
	configured int
	steps      int
	pulled     []byte
	lastErr    string
}

func (s *stubSession) Configure(cfg *session.Config) error {
	s.cfg = cfg
	s.configured++
	return nil
}

func (s *stubSession) Step() (bool, error) {
	s.steps++
	if s.stepErr != nil {
		s.lastErr = s.stepErr.Error()
		return true, s.stepErr
	}
	switch s.steps {
	case 1:
		for _, line := range s.headers {
			s.cfg.HeaderSink.FeedHeaderLine(line)
		}
		s.cfg.HeaderSink.FeedHeaderLine("\r\n")
		for _, line := range s.trailer {
			s.cfg.HeaderSink.FeedHeaderLine(line)
		}
		return false, nil
	case 2:
		if s.cfg.BodySource != nil {
			p := make([]byte, 8)
			for {
				n := s.cfg.BodySource.PullBytes(p)
				if n <= 0 {
					break
				}
				s.pulled = append(s.pulled, p[:n]...)
			}
		}
		return false, nil
	default:
		for _, chunk := range s.body {
			s.cfg.BodySink.Feed([]byte(chunk))
		}
		return true, nil
	}
}

func (s *stubSession) StatusCode() int {
	return s.code
}

func (s *stubSession) Recycled() bool {
	return s.recycled
}

func (s *stubSession) LastError() string {
	return s.lastErr
}

type stubFactory struct {
	sessions   []*stubSession
	provided   int
	releases   []bool
	provideErr error
}

func newStubFactory(sessions ...*stubSession) *stubFactory {
	return &stubFactory{sessions: sessions}
}

func (f *stubFactory) Provide(target *url.URL, params *session.Params) (session.Session, error) {
	if f.provideErr != nil {
		return nil, f.provideErr
	}
	if f.provided >= len(f.sessions) {
		return nil, errors.New("stubFactory: out of scripted sessions")
	}
	s := f.sessions[f.provided]
	f.provided++
	return s, nil
}

func (f *stubFactory) Release(s session.Session, discard bool) {
	f.releases = append(f.releases, discard)
}

// A countingSource wraps a content.Source to observe rewinds and to
// optionally fail them.
type countingSource struct {
	content.Source
	rewinds   int
	rewindErr error
}

func (s *countingSource) Rewind() error {
	s.rewinds++
	if s.rewindErr != nil {
		return s.rewindErr
	}
	return s.Source.Rewind()
}

// A faultySource reports a producer-side error on every pull.
type faultySource struct{}

func (s *faultySource) PullBytes(p []byte) int {
	return -1
}

func (s *faultySource) Rewind() error {
	return nil
}

func (s *faultySource) Length() int64 {
	return -1
}
