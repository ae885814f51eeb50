// File: protocol/clientreq.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// C8: formats the client's opening handshake request into a caller-owned
// buffer. Submission to the socket collaborator is the caller's job
// (see Handshake.startClientSend in handshake.go); this file only formats.

package protocol

import (
	"crypto/rand"
	"fmt"
)

// clientKeyRaw is the 16 random bytes RFC 6455 §4.1 requires behind the
// client's Sec-WebSocket-Key. Generation uses crypto/rand, not the
// hand-rolled primitives spec.md §4.3/§4.4 carve out for SHA-1/Base64 —
// those two are spec-mandated reimplementations, key entropy is not.
func newClientKeyRaw() ([16]byte, error) {
	var raw [16]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return raw, err
	}
	return raw, nil
}

// FormatClientRequest writes the client opening handshake into out,
// returning the number of bytes written. encodedKeyOut receives the
// 24-character encoded Sec-WebSocket-Key (without NUL) so the caller can
// derive expected_accept_key via C5 before or after sending.
func FormatClientRequest(out []byte, resource, remoteHost string, localSP SPID, spMap *SPTokenMap, encodedKeyOut []byte) (int, error) {
	if len(encodedKeyOut) < 24 {
		return 0, fmt.Errorf("protocol: encodedKeyOut too small: have %d, need 24", len(encodedKeyOut))
	}
	token, ok := spMap.Token(localSP)
	if !ok {
		return 0, fmt.Errorf("protocol: local SP %v has no token mapping", localSP)
	}

	raw, err := newClientKeyRaw()
	if err != nil {
		return 0, err
	}
	var keyBuf [25]byte
	if _, err := base64Encode(raw[:], keyBuf[:]); err != nil {
		return 0, err
	}
	copy(encodedKeyOut[:24], keyBuf[:24])

	n := copy(out, "GET ")
	n += copy(out[n:], resource)
	n += copy(out[n:], " HTTP/1.1\r\nHost: ")
	n += copy(out[n:], remoteHost)
	n += copy(out[n:], "\r\nUpgrade: websocket\r\nConnection: Upgrade\r\nSec-WebSocket-Key: ")
	n += copy(out[n:], keyBuf[:24])
	n += copy(out[n:], "\r\nSec-WebSocket-Version: 13\r\nSec-WebSocket-Protocol: ")
	n += copy(out[n:], token)
	n += copy(out[n:], "\r\n\r\n")
	return n, nil
}
