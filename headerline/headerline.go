// Copyright 2026 The reqcore Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package headerline parses and formats single HTTP header lines.
//
// The request lifecycle receives response headers from the transport
// one raw line at a time, in arrival order, with duplicates preserved.
// This package converts between those raw lines and (name, value)
// pairs. It never sees the bare line terminator that ends the header
// block; the lifecycle intercepts that sentinel before parsing.
package headerline

import "strings"

// A Header is one (name, value) header pair. Headers compare as exact
// byte sequences; any case-insensitive matching is the caller's
// decision.
type Header struct {
	Name  string
	Value string
}

// Parse splits one raw header line into a Header. The line may include
// its trailing line terminator.
//
// The name is the substring before the first colon with surrounding
// whitespace trimmed; the value is the substring after it with
// surrounding whitespace and the line terminator trimmed. A line with
// no colon yields the whole trimmed line as the name and an empty
// value.
func Parse(line string) Header {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return Header{Name: trim(line)}
	}
	return Header{
		Name:  trim(line[:i]),
		Value: trim(line[i+1:]),
	}
}

// Format renders a Header as an outbound header line without a
// terminator, in the form "Name: Value".
func Format(h Header) string {
	return h.Name + ": " + h.Value
}

func trim(s string) string {
	return strings.Trim(s, " \t\r\n")
}
