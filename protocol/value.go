// File: protocol/value.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// matchValue is C2: scan a cursor to a terminator (CRLF or a single SP),
// returning the slice up to it, trimmed per flags. Parsed results are
// index+length Spans rather than raw sub-slices, per the Design Notes'
// preference for borrows with an explicit, bounds-checkable lifetime.

package protocol

import "bytes"

// Span is an offset+length borrow into a handshake buffer. It never
// outlives the buffer it indexes, and the buffer is never reallocated
// while a Handshake owns it, so a Span stays valid for the buffer's
// lifetime once produced.
type Span struct {
	Off int
	Len int
}

// Bytes resolves the span against buf.
func (s Span) Bytes(buf []byte) []byte {
	if s.Len == 0 {
		return nil
	}
	return buf[s.Off : s.Off+s.Len]
}

// matchValue finds the first occurrence of term in buf[pos:lim]. On a
// miss it returns ok=false and leaves pos untouched. On a hit it returns
// the (optionally trimmed) slice before term and advances past term. An
// empty slice is a legal match.
func matchValue(buf []byte, lim, pos int, term []byte, trimLeadingSP, trimTrailingSP bool) (val Span, newPos int, ok bool) {
	if pos > lim {
		return Span{}, pos, false
	}
	rel := bytes.Index(buf[pos:lim], term)
	if rel < 0 {
		return Span{}, pos, false
	}
	termAt := pos + rel
	start, end := pos, termAt
	if trimLeadingSP {
		for start < end && buf[start] == ' ' {
			start++
		}
	}
	if trimTrailingSP {
		for end > start && buf[end-1] == ' ' {
			end--
		}
	}
	return Span{Off: start, Len: end - start}, termAt + len(term), true
}
