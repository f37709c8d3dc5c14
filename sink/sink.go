// Copyright 2026 The reqcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package sink provides the FIFO byte buffer holding a response body
// between the transport that produces it and the caller that drains
// it.
//
// A Buffer has a single logical owner and performs no internal
// synchronization: the request lifecycle feeds it while driving the
// transport and drains it afterwards, all on one goroutine. Consume
// never blocks, because by the time reads begin the full body is
// already resident.
package sink

// A Buffer is a FIFO byte buffer. The zero value is empty and ready
// for use.
type Buffer struct {
	buf []byte
	off int
}

// Feed appends p to the tail of the buffer. The bytes are copied, so
// the caller may reuse p.
func (b *Buffer) Feed(p []byte) {
	if len(p) == 0 {
		return
	}
	b.compact()
	b.buf = append(b.buf, p...)
}

// Consume removes up to len(p) bytes from the head of the buffer,
// copies them into p, and returns the number of bytes removed. It
// returns fewer than len(p) bytes, including zero, if fewer are
// available. Bytes are returned in original arrival order.
func (b *Buffer) Consume(p []byte) int {
	n := copy(p, b.buf[b.off:])
	b.off += n
	if b.off == len(b.buf) {
		b.buf = b.buf[:0]
		b.off = 0
	}
	return n
}

// Len returns the number of unconsumed bytes.
func (b *Buffer) Len() int {
	return len(b.buf) - b.off
}

// compact drops the consumed prefix once it dominates the backing
// array, keeping Feed from growing the array without bound across
// interleaved feed/consume cycles.
func (b *Buffer) compact() {
	if b.off > len(b.buf)/2 {
		n := copy(b.buf, b.buf[b.off:])
		b.buf = b.buf[:n]
		b.off = 0
	}
}
