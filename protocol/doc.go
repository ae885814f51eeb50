// Package protocol implements the WebSocket opening-handshake subsystem
// described in spec.md: the event-driven handshake FSM, the streaming
// request/response parsers it drives, the inline SHA-1/Base64 accept-key
// derivation, the client-request and server-reply generators, and the
// SP↔token lookup table. A single Handshake value is scoped to one
// connection, from first byte on the wire to promotion or abandonment.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package protocol
