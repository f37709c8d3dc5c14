// Copyright 2026 The reqcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"net/url"
	"sync"
)

// A Pool is a Factory decorator that recycles idle sessions per
// target. A session released without the discard flag is parked on a
// bounded idle list keyed by scheme and host; a later Provide for the
// same target reuses it and reports it as recycled.
//
// Pool is safe for concurrent use by multiple goroutines, although
// each individual session must still be driven by a single goroutine
// at a time.
type Pool struct {
	inner Factory

	mu   sync.Mutex
	idle map[string]chan Session
}

// NewPool returns a Pool recycling sessions provided by inner. The
// per-target idle capacity is taken from the Params of each Provide
// call.
func NewPool(inner Factory) *Pool {
	return &Pool{
		inner: inner,
		idle:  make(map[string]chan Session),
	}
}

// Provide implements Factory. An idle session for the target is reused
// when one is parked; otherwise a new session is obtained from the
// inner factory.
func (p *Pool) Provide(target *url.URL, params *Params) (Session, error) {
	if target == nil {
		return p.inner.Provide(target, params)
	}
	key := poolKey(target)
	select {
	case s := <-p.ticket(key, params):
		return &pooledSession{Session: s, key: key, recycled: true}, nil
	default:
	}
	s, err := p.inner.Provide(target, params)
	if err != nil {
		return nil, err
	}
	return &pooledSession{Session: s, key: key}, nil
}

// Release implements Factory. A discarded session is handed back to
// the inner factory for disposal; otherwise it is parked on the idle
// list, or disposed of when the list is full.
func (p *Pool) Release(s Session, discard bool) {
	ps, ok := s.(*pooledSession)
	if !ok {
		p.inner.Release(s, discard)
		return
	}
	if discard {
		p.inner.Release(ps.Session, true)
		return
	}
	select {
	case p.ticket(ps.key, nil) <- ps.Session:
	default:
		p.inner.Release(ps.Session, true)
	}
}

func (p *Pool) ticket(key string, params *Params) chan Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.idle[key]
	if !ok {
		c = make(chan Session, params.maxIdleSessions())
		p.idle[key] = c
	}
	return c
}

func poolKey(target *url.URL) string {
	return target.Scheme + "://" + target.Host
}

// A pooledSession wraps an inner session with the recycling metadata
// the pool tracks for it.
type pooledSession struct {
	Session
	key      string
	recycled bool
}

func (s *pooledSession) Recycled() bool {
	return s.recycled
}
