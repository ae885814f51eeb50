// File: protocol/constants.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package protocol

// MagicGUID is appended to the client's Sec-WebSocket-Key before hashing,
// per RFC 6455 §1.3. Byte-for-byte as spec.md §6 fixes it.
const MagicGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

// CRLF and CRLFCRLF are the line and header-block terminators spec.md §6
// fixes as the two bytes 0D 0A and the four bytes ending a header block.
var (
	crlf     = []byte{'\r', '\n'}
	crlfcrlf = []byte{'\r', '\n', '\r', '\n'}
)

// DefaultTimeoutMS is the fixed handshake timeout spec.md §3 mandates.
const DefaultTimeoutMS = 5000

// RequiredWebSocketVersion is the only Sec-WebSocket-Version this
// subsystem accepts (spec.md §4.6).
const RequiredWebSocketVersion = "13"

// minRequestPrime is the byte count of the server's first recv: a request
// line plus the Upgrade, Connection, Host, Origin, Sec-WebSocket-Key and
// Sec-WebSocket-Version headers, each collapsed to its shortest form.
// Origin is part of this template although validateRequest does not
// require it, so a complete request shorter than this (possible when
// Origin and Sec-WebSocket-Protocol are both omitted) does not complete
// the first recv. Mirrors ws_handshake.c's
// nn_ws_handshake_start (NN_WS_SERVER case) byte-for-byte, which primes
// recv_len off strlen of this exact template rather than the request
// line alone.
const minRequestPrime = len("GET x HTTP/1.1\r\n" +
	"Upgrade: websocket\r\n" +
	"Connection: Upgrade\r\n" +
	"Host: x\r\n" +
	"Origin: x\r\n" +
	"Sec-WebSocket-Key: xxxxxxxxxxxxxxxxxxxxxxxx\r\n" +
	"Sec-WebSocket-Version: xx\r\n\r\n")

// minResponsePrime is the symmetric priming constant for the client's
// first recv of a server reply: ws_handshake.c primes it off strlen of
// the shortest conceivable complete response, "HTTP/1.1 xxx\r\n\r\n".
const minResponsePrime = len("HTTP/1.1 xxx\r\n\r\n")

// DefaultBufferSize is the recommended fixed size for opening_hs/response
// buffers (spec.md §3: "recommended >= 4096").
const DefaultBufferSize = 4096

// Recognized header names, matched case-insensitively by matchToken.
const (
	hdrHost       = "Host:"
	hdrOrigin     = "Origin:"
	hdrSecKey     = "Sec-WebSocket-Key:"
	hdrUpgrade    = "Upgrade:"
	hdrConnection = "Connection:"
	hdrSecVersion = "Sec-WebSocket-Version:"
	hdrSecProto   = "Sec-WebSocket-Protocol:"
	hdrSecExt     = "Sec-WebSocket-Extensions:"

	hdrServer        = "Server:"
	hdrSecAccept     = "Sec-WebSocket-Accept:"
	hdrSecVersionSrv = "Sec-WebSocket-Version-Server:"
	hdrSecProtoSrv   = "Sec-WebSocket-Protocol-Server:"
)
