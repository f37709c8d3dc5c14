// Copyright 2026 The reqcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package deadline provides the absolute deadline guard bounding the
// blocking operations of a request.
//
// A Guard compares the monotonic clock against an optional absolute
// deadline. The zero Guard has no deadline and never expires. Guards
// are pure values: checking one has no side effects, and an expired
// Guard stays expired, since elapsed time cannot un-elapse.
package deadline

import "time"

// A Guard is an optional absolute deadline. The zero value has no
// deadline and never expires.
type Guard struct {
	at time.Time
}

// At returns a Guard that expires at the instant t. Because t is
// captured as-is, callers should obtain it from time.Now-derived
// values so the monotonic clock reading is preserved.
func At(t time.Time) Guard {
	return Guard{at: t}
}

// In returns a Guard that expires d from now. The deadline carries a
// monotonic clock reading and is therefore immune to wall-clock
// adjustments.
func In(d time.Duration) Guard {
	return Guard{at: time.Now().Add(d)}
}

// None returns a Guard with no deadline. It is equivalent to the zero
// value.
func None() Guard {
	return Guard{}
}

// Valid reports whether the Guard carries a deadline.
func (g Guard) Valid() bool {
	return g.at != (time.Time{})
}

// Expired reports whether the deadline has passed. A Guard with no
// deadline never expires.
func (g Guard) Expired() bool {
	return g.Valid() && g.at.Before(time.Now())
}

// Remaining returns the time left before expiry. It returns a negative
// duration if the deadline has passed and zero if the Guard carries no
// deadline.
func (g Guard) Remaining() time.Duration {
	if !g.Valid() {
		return 0
	}
	return time.Until(g.at)
}
