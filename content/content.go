// Copyright 2026 The reqcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package content defines the pull-based producer of outbound request
// body bytes and standard implementations of it.
//
// A Source is borrowed by a request, never owned: it must outlive the
// request, and it must not be shared across concurrently active
// requests, because Rewind mutates the read position.
package content

import (
	"errors"
	"io"
	"io/ioutil"
)

const badBodyTypeMsg = "reqcore/content: invalid type (for body use " +
	"nil, string, []byte, io.Reader or io.ReadCloser)"

// A Source produces outbound request body bytes on demand.
type Source interface {
	// PullBytes fills p with up to len(p) bytes of body and returns
	// the count produced. A return of 0 signals the end of the body.
	// A negative return signals a producer-side error; the request
	// lifecycle treats it the same as end of body.
	PullBytes(p []byte) int

	// Rewind resets the source to the beginning of the body. The
	// lifecycle calls it exactly once per start attempt, before any
	// bytes are pulled. Rewind must be idempotent and must have no
	// effect beyond resetting the read position.
	Rewind() error

	// Length returns the total body length in bytes, or -1 if it is
	// unknown.
	Length() int64
}

// A BytesSource is a Source over an in-memory byte slice.
type BytesSource struct {
	body []byte
	pos  int
}

// NewBytes returns a Source producing the bytes of body. The slice is
// not copied; the caller must not modify it while a request is using
// the source.
func NewBytes(body []byte) *BytesSource {
	return &BytesSource{body: body}
}

// PullBytes implements Source.
func (s *BytesSource) PullBytes(p []byte) int {
	n := copy(p, s.body[s.pos:])
	s.pos += n
	return n
}

// Rewind implements Source. It never fails.
func (s *BytesSource) Rewind() error {
	s.pos = 0
	return nil
}

// Length implements Source.
func (s *BytesSource) Length() int64 {
	return int64(len(s.body))
}

// A ReaderSource is a Source over an io.ReadSeeker, for bodies too
// large or too awkward to buffer in memory.
type ReaderSource struct {
	r      io.ReadSeeker
	length int64
}

// NewReader returns a Source pulling from r. Parameter length is the
// total body length, or -1 if unknown.
func NewReader(r io.ReadSeeker, length int64) *ReaderSource {
	return &ReaderSource{r: r, length: length}
}

// PullBytes implements Source. Read errors other than io.EOF are
// reported as -1.
func (s *ReaderSource) PullBytes(p []byte) int {
	n, err := s.r.Read(p)
	if n > 0 {
		return n
	}
	if err != nil && err != io.EOF {
		return -1
	}
	return 0
}

// Rewind implements Source by seeking to the start of the reader.
func (s *ReaderSource) Rewind() error {
	_, err := s.r.Seek(0, io.SeekStart)
	return err
}

// Length implements Source.
func (s *ReaderSource) Length() int64 {
	return s.length
}

// SourceBytes converts a generic body parameter to a byte slice for
// use with NewBytes.
//
// The body parameter may be nil, or it may be a string, []byte,
// io.Reader, or io.ReadCloser. The conversion logic is:
//
// • If body is nil, a nil byte slice and no error is returned.
//
// • If body is a []byte, body itself and no error is returned.
//
// • If body is a string, the built-in conversion from string to byte
// slice, and no error, is returned.
//
// • If body is an io.Reader or io.ReadCloser, the result of reading
// the whole contents of the reader (and closing it if it implements
// Closer) is returned, together with any error encountered while
// reading or closing.
//
// • If body is any other type than those listed above, a nil byte
// slice and an error is returned.
func SourceBytes(body interface{}) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case io.ReadCloser:
		b, err := ioutil.ReadAll(x)
		if err != nil {
			return nil, err
		}
		err = x.Close()
		if err != nil {
			return nil, err
		}
		return b, nil
	case io.Reader:
		return SourceBytes(ioutil.NopCloser(x))
	default:
		return nil, errors.New(badBodyTypeMsg)
	}
}
