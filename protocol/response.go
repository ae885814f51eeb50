// File: protocol/response.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// C7: streaming parser for the server opening handshake response. Mirrors
// request.go's shape, against buf[:lim].

package protocol

import "bytes"

// ParsedResponse holds index+length borrows into the buffer the response
// was parsed from. VersionServer and ProtocolServer are nanomsg-specific
// extension headers: parsed but never validated (see Design Notes).
type ParsedResponse struct {
	StatusCode     slot
	Reason         slot
	Server         slot
	AcceptKey      slot
	Upgrade        slot
	Conn           slot
	VersionServer  slot
	ProtocolServer slot
	Extensions     slot
}

type respHeaderRule struct {
	name string
	set  func(*ParsedResponse, Span)
}

var responseHeaderRules = []respHeaderRule{
	{hdrServer, func(p *ParsedResponse, s Span) { p.Server = slot{s, true} }},
	{hdrSecAccept, func(p *ParsedResponse, s Span) { p.AcceptKey = slot{s, true} }},
	{hdrUpgrade, func(p *ParsedResponse, s Span) { p.Upgrade = slot{s, true} }},
	{hdrConnection, func(p *ParsedResponse, s Span) { p.Conn = slot{s, true} }},
	{hdrSecVersionSrv, func(p *ParsedResponse, s Span) { p.VersionServer = slot{s, true} }},
	{hdrSecProtoSrv, func(p *ParsedResponse, s Span) { p.ProtocolServer = slot{s, true} }},
	{hdrSecExt, func(p *ParsedResponse, s Span) { p.Extensions = slot{s, true} }},
}

// ParseResponse attempts to parse a complete server opening handshake
// response from buf[:lim]. On RecvMore, out is left untouched. On
// Valid/Invalid, out holds the parsed fields and validateResponse below
// has already been applied. Unlike ParseRequest no ResponseCode is
// returned: the client side has no diagnostic reply to send, so the
// Outcome is all a caller gets.
func ParseResponse(buf []byte, lim int, expectedAcceptKey []byte, out *ParsedResponse) Outcome {
	if bytes.Index(buf[:lim], crlfcrlf) < 0 {
		return RecvMore
	}

	pos := 0
	var ok bool

	pos, ok = matchToken(buf, lim, pos, "HTTP/1.1 ", false, false)
	if !ok {
		return RecvMore
	}
	status, newPos, ok := matchValue(buf, lim, pos, []byte(" "), false, false)
	if !ok {
		return RecvMore
	}
	pos = newPos
	reason, newPos, ok := matchValue(buf, lim, pos, crlf, false, true)
	if !ok {
		return RecvMore
	}
	pos = newPos

	var parsed ParsedResponse
	parsed.StatusCode = slot{status, true}
	parsed.Reason = slot{reason, true}

	for {
		if endPos, ok := matchToken(buf, lim, pos, "\r\n", false, false); ok {
			pos = endPos
			break
		}

		matchedHeader := false
		for _, rule := range responseHeaderRules {
			hp, ok := matchToken(buf, lim, pos, rule.name, true, false)
			if !ok {
				continue
			}
			val, vp, ok := matchValue(buf, lim, hp, crlf, true, true)
			if !ok {
				return RecvMore
			}
			rule.set(&parsed, val)
			pos = vp
			matchedHeader = true
			break
		}
		if matchedHeader {
			continue
		}

		_, vp, ok := matchValue(buf, lim, pos, crlf, false, false)
		if !ok {
			return RecvMore
		}
		pos = vp
	}

	*out = parsed
	if validateResponse(buf, out, expectedAcceptKey) {
		return Valid
	}
	return Invalid
}

// validateResponse applies spec.md §4.7's validation order. The two
// nanomsg extension headers (VersionServer, ProtocolServer) deliberately
// do not participate here, per original_source/ws_handshake.c.
func validateResponse(buf []byte, p *ParsedResponse, expectedAcceptKey []byte) bool {
	if !p.StatusCode.set || !p.Upgrade.set || !p.Conn.set || !p.AcceptKey.set {
		return false
	}
	if !spanEqualFold(buf, p.StatusCode, "101") {
		return false
	}
	if !spanEqualFold(buf, p.Upgrade, "websocket") {
		return false
	}
	if !spanEqualFold(buf, p.Conn, "Upgrade") {
		return false
	}
	got := p.AcceptKey.Bytes(buf)
	if len(got) != len(expectedAcceptKey) {
		return false
	}
	for i := range got {
		if asciiLower(got[i]) != asciiLower(expectedAcceptKey[i]) {
			return false
		}
	}
	return true
}
