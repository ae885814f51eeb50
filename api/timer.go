// File: api/timer.go
// Package api
// Author: momentics <momentics@gmail.com>
//
// Timer is the one-shot timeout collaborator the handshake core is given
// (spec.md §6). It guarantees Stopped is posted exactly once after Stop,
// which is what lets the FSM's stopping sub-states wait synchronously
// (event-loop-wise) for timer acknowledgement before publishing a
// terminal result (spec.md §3 invariant 5, §5 Cancellation/timeout).

package api

type Timer interface {
	// Start arms a one-shot timer for ms milliseconds. Firing posts a
	// HandshakeEvent{Source: SourceTimer, Type: EvTimeout}.
	Start(ms int)

	// Stop requests cancellation. Posts exactly one
	// HandshakeEvent{Source: SourceTimer, Type: EvStopped}, whether or
	// not the timer had already fired.
	Stop()

	// IsIdle reports whether Stopped has been delivered.
	IsIdle() bool
}
