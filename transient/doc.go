// Copyright 2026 The reqcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies errors from a request exchange as
// transient or non-transient. The request lifecycle uses it to decide
// whether a transport session that saw an error may safely be pooled
// again; callers can use it to build their own retry layers on top of
// the single-use request engine, or to bucket error metrics.
//
// Package transient is extremely lightweight, as it depends only on
// the standard library packages "errors" and "syscall", so it doesn't
// bring any significant dependencies when imported as a standalone
// package.
package transient
