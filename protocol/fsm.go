// File: protocol/fsm.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// C11: the handshake state machine's vocabulary and the pure helper
// functions it drives parsing with. The state holder itself (Handshake)
// lives in handshake.go; this file keeps the event-driven match exhaustive
// and the streaming-recv arithmetic in one place shared by both the
// server and client recv states.

package protocol

import "bytes"

// State is one of the ten states spec.md §4.11 names. HandshakeSent is
// carried for fidelity with that list but is never entered by any
// transition below: the reference's corresponding bookkeeping collapses
// into ServerReply/ClientSend in this implementation.
type State int

const (
	StateIdle State = iota
	StateServerRecv
	StateServerReply
	StateClientSend
	StateClientRecv
	StateHandshakeSent
	StateStoppingTimerError
	StateStoppingTimerDone
	StateDone
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateServerRecv:
		return "server_recv"
	case StateServerReply:
		return "server_reply"
	case StateClientSend:
		return "client_send"
	case StateClientRecv:
		return "client_recv"
	case StateHandshakeSent:
		return "handshake_sent"
	case StateStoppingTimerError:
		return "stopping_timer_error"
	case StateStoppingTimerDone:
		return "stopping_timer_done"
	case StateDone:
		return "done"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// crlfOverlap returns the length of the longest proper suffix of
// buf[:lim] that is also a prefix of CRLFCRLF. A streaming parser that
// just consumed buf[:lim] without finding a complete CRLFCRLF uses this
// to avoid re-scanning bytes it has already ruled out: only the next
// 4-overlap bytes could possibly complete the terminator.
func crlfOverlap(buf []byte, lim int) int {
	maxK := len(crlfcrlf) - 1
	if lim < maxK {
		maxK = lim
	}
	for k := maxK; k >= 1; k-- {
		if bytes.Equal(buf[lim-k:lim], crlfcrlf[:k]) {
			return k
		}
	}
	return 0
}

// nextChunk computes the next recv window after a RECV_MORE outcome at
// buf[:lim]: the new cursor is lim itself, and the new chunk length is
// however many more bytes are needed to extend the trailing partial
// CRLFCRLF match to a full one. overflow reports whether scheduling that
// recv would exceed bufCap, the fixed buffer's capacity.
func nextChunk(buf []byte, lim, bufCap int) (newRecvPos, newRecvLen int, overflow bool) {
	newRecvPos = lim
	newRecvLen = len(crlfcrlf) - crlfOverlap(buf, lim)
	return newRecvPos, newRecvLen, newRecvPos+newRecvLen > bufCap
}
