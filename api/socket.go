// File: api/socket.go
// Package api
// Author: momentics <momentics@gmail.com>
//
// Socket is the byte-stream transport collaborator the handshake core is
// given; spec.md §1 keeps its implementation out of scope and only fixes
// its contract (§6): non-blocking read of exactly n bytes into a caller
// buffer, non-blocking write of a single contiguous byte range, plus
// advisory shutdown and terminal error notification. Completions are
// posted as HandshakeEvent values through the EventSink supplied at
// construction, never returned synchronously.

package api

// Socket is owned by exactly one party at a time (spec.md §3 invariant 4):
// either the party driving it directly, or a Handshake between Start and
// its terminal leave.
type Socket interface {
	// RecvInto arranges for exactly n bytes to land in buf[offset:offset+n].
	// The caller must not touch that range until the completion event
	// arrives. Returns an error only for a synchronous setup failure
	// (e.g. the socket is already closed); all transport failures are
	// reported asynchronously as EvSocketError.
	RecvInto(buf []byte, offset, n int) error

	// Send arranges for p to be written in full as a single operation.
	// p must remain valid until the completion event arrives.
	Send(p []byte) error

	// Close releases the underlying resource. Safe to call once the
	// handshake has published its terminal result.
	Close() error
}
