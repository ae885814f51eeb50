// Package api
// Author: momentics <momentics@gmail.com>
//
// Error taxonomy shared across the handshake subsystem's packages.

package api

import "fmt"

// ErrorCode classifies a handshake failure per spec.md §7. Each kind maps
// to a distinct recovery story for the parent: all of them are terminal,
// none is locally recovered.
type ErrorCode int

const (
	// ErrCodeOK is the zero value; never attached to a returned error.
	ErrCodeOK ErrorCode = iota
	// ErrCodeProtocolMalformed: parse failed after a full CRLFCRLF was present.
	ErrCodeProtocolMalformed
	// ErrCodeProtocolIncompatible: well-formed but unacceptable (missing
	// header, wrong version, wrong upgrade/connection token, wrong accept key).
	ErrCodeProtocolIncompatible
	// ErrCodePeerIncompatible: valid WebSocket request but the advertised
	// SP cannot peer with the local SP, or names an unknown SP token.
	ErrCodePeerIncompatible
	// ErrCodeBufferExhausted: handshake would exceed the fixed buffer
	// before a terminating CRLFCRLF was found.
	ErrCodeBufferExhausted
	// ErrCodeTimeout: the handshake timer elapsed before completion.
	ErrCodeTimeout
	// ErrCodeTransportError: the underlying socket reported an error or
	// an advisory shutdown before the handshake completed.
	ErrCodeTransportError
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeProtocolMalformed:
		return "protocol_malformed"
	case ErrCodeProtocolIncompatible:
		return "protocol_incompatible"
	case ErrCodePeerIncompatible:
		return "peer_incompatible"
	case ErrCodeBufferExhausted:
		return "buffer_exhausted"
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeTransportError:
		return "transport_error"
	default:
		return "ok"
	}
}

// Error is a structured handshake error carrying a classification code
// plus free-form diagnostic context, mirroring the teacher library's
// api.Error/api.ErrorCode shape.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (context: %+v)", e.Code, e.Message, e.Context)
}

// NewError creates a structured error of the given kind.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithContext attaches a diagnostic key/value pair and returns the receiver.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
