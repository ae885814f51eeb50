// File: api/events.go
// Package api defines the event vocabulary driving the handshake FSM.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Event is the contract a concurrency.EventLoop dispatches, one at a time.
// A Source/Type pair carried as Data() lets a single loop instance drive
// one handshake through every event origin named in spec.md §4.11:
// Action (Start/Stop), Socket (Sent/Received/Shutdown/Error) and Timer
// (Timeout/Stopped).
type Event interface {
	Data() any
}

// EventSource names which collaborator raised a HandshakeEvent.
type EventSource int

const (
	SourceAction EventSource = iota
	SourceSocket
	SourceTimer
)

func (s EventSource) String() string {
	switch s {
	case SourceAction:
		return "action"
	case SourceSocket:
		return "socket"
	case SourceTimer:
		return "timer"
	default:
		return "unknown"
	}
}

// EventType enumerates the concrete event carried by a HandshakeEvent.
type EventType int

const (
	EvStart EventType = iota
	EvStop
	EvSent
	EvReceived
	EvShutdown
	EvSocketError
	EvTimeout
	EvStopped
)

func (t EventType) String() string {
	switch t {
	case EvStart:
		return "start"
	case EvStop:
		return "stop"
	case EvSent:
		return "sent"
	case EvReceived:
		return "received"
	case EvShutdown:
		return "shutdown"
	case EvSocketError:
		return "error"
	case EvTimeout:
		return "timeout"
	case EvStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// HandshakeEvent is the sole Event implementation posted to a handshake's
// EventLoop. N carries the byte count for Sent/Received completions; Err
// carries the cause for EvSocketError.
type HandshakeEvent struct {
	Source EventSource
	Type   EventType
	N      int
	Err    error
}

func (e HandshakeEvent) Data() any { return e }

// EventSink is satisfied by concurrency.EventLoop; Socket and Timer
// collaborators post completions through it rather than calling back
// into the handshake directly, preserving the single dispatch point
// spec.md §5 requires ("events observed by the FSM are totally ordered
// by the loop").
type EventSink interface {
	Push(ev Event) bool
}

// OpenEvent and CloseEvent remain for callers layering a connection
// registry on top of a successfully promoted socket; the handshake
// subsystem itself never emits them.
type OpenEvent struct {
	Conn any
}

type CloseEvent struct {
	Conn any
}

func (e OpenEvent) Data() any  { return e }
func (e CloseEvent) Data() any { return e }
