// File: protocol/serverreply.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// C9: formats the server's opening handshake reply into a caller-owned
// buffer, per spec.md §4.9's two templates and status-line table.

package protocol

import "fmt"

// statusLines is the fixed ResponseCode -> status-line table spec.md §4.9
// names. CodeOK has no entry: it takes the 101 Switching Protocols path.
var statusLines = map[ResponseCode]string{
	CodeTooBig:      "400 Opening Handshake Too Long",
	CodeWSProto:     "400 Cannot Have Body",
	CodeWSVersion:   "400 Unsupported WebSocket Version",
	CodeNNProto:     "400 Missing nanomsg Required Headers",
	CodeNotPeer:     "400 Incompatible Socket Type",
	CodeUnknownType: "400 Unrecognized Socket Type",
}

// FormatServerReply writes the server's opening handshake reply into out.
// On the success path, clientKey and protocol are the client's raw
// Sec-WebSocket-Key and Sec-WebSocket-Protocol bytes (from ParsedRequest,
// resolved against the request buffer by the caller).
func FormatServerReply(out []byte, code ResponseCode, clientKey, protocol []byte) (int, error) {
	if code == CodeOK {
		var acceptBuf [AcceptKeyLen + 1]byte
		if err := deriveAcceptKey(clientKey, acceptBuf[:]); err != nil {
			return 0, err
		}
		n := copy(out, "HTTP/1.1 101 Switching Protocols\r\nUpgrade: websocket\r\nConnection: Upgrade\r\nSec-WebSocket-Accept: ")
		n += copy(out[n:], acceptBuf[:AcceptKeyLen])
		n += copy(out[n:], "\r\nSec-WebSocket-Protocol: ")
		n += copy(out[n:], protocol)
		n += copy(out[n:], "\r\n\r\n")
		return n, nil
	}

	line, ok := statusLines[code]
	if !ok {
		return 0, fmt.Errorf("protocol: no status line for response code %v", code)
	}
	n := copy(out, "HTTP/1.1 ")
	n += copy(out[n:], line)
	n += copy(out[n:], "\r\nSec-WebSocket-Version: ")
	n += copy(out[n:], RequiredWebSocketVersion)
	n += copy(out[n:], "\r\n")
	return n, nil
}
