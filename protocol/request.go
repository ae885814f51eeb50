// File: protocol/request.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// C6: streaming parser for the client opening handshake. Operates
// top-down per spec.md §4.6 against buf[:lim], the authoritative
// received-length prefix of the handshake buffer (no NUL-terminator
// invariant; see Design Notes).

package protocol

import "bytes"

// ParsedRequest holds index+length borrows into the buffer the request
// was parsed from, valid for exactly that buffer's lifetime.
type ParsedRequest struct {
	URI        slot
	Host       slot
	Origin     slot
	Key        slot
	Upgrade    slot
	Conn       slot
	Version    slot
	Protocol   slot
	Extensions slot
}

type reqHeaderRule struct {
	name string
	set  func(*ParsedRequest, Span)
}

var requestHeaderRules = []reqHeaderRule{
	{hdrHost, func(p *ParsedRequest, s Span) { p.Host = slot{s, true} }},
	{hdrOrigin, func(p *ParsedRequest, s Span) { p.Origin = slot{s, true} }},
	{hdrSecKey, func(p *ParsedRequest, s Span) { p.Key = slot{s, true} }},
	{hdrUpgrade, func(p *ParsedRequest, s Span) { p.Upgrade = slot{s, true} }},
	{hdrConnection, func(p *ParsedRequest, s Span) { p.Conn = slot{s, true} }},
	{hdrSecVersion, func(p *ParsedRequest, s Span) { p.Version = slot{s, true} }},
	{hdrSecProto, func(p *ParsedRequest, s Span) { p.Protocol = slot{s, true} }},
	{hdrSecExt, func(p *ParsedRequest, s Span) { p.Extensions = slot{s, true} }},
}

// ParseRequest attempts to parse a complete client opening handshake
// from buf[:lim]. On RecvMore, out is left exactly as it was on entry
// (spec.md §8 law 4). On Valid/Invalid it reports the reason via code.
func ParseRequest(buf []byte, lim int, spMap *SPTokenMap, peer PeerChecker, out *ParsedRequest) (Outcome, ResponseCode) {
	if bytes.Index(buf[:lim], crlfcrlf) < 0 {
		return RecvMore, CodeOK
	}

	pos := 0
	var ok bool

	pos, ok = matchToken(buf, lim, pos, "GET ", false, false)
	if !ok {
		return RecvMore, CodeOK
	}
	uri, newPos, ok := matchValue(buf, lim, pos, []byte(" "), false, false)
	if !ok || uri.Len == 0 {
		return RecvMore, CodeOK
	}
	pos = newPos
	pos, ok = matchToken(buf, lim, pos, "HTTP/1.1", false, false)
	if !ok {
		return RecvMore, CodeOK
	}
	pos, ok = matchToken(buf, lim, pos, "\r\n", false, false)
	if !ok {
		return RecvMore, CodeOK
	}

	var parsed ParsedRequest
	parsed.URI = slot{uri, true}

	for {
		if endPos, ok := matchToken(buf, lim, pos, "\r\n", false, false); ok {
			pos = endPos
			break
		}

		matchedHeader := false
		for _, rule := range requestHeaderRules {
			hp, ok := matchToken(buf, lim, pos, rule.name, true, false)
			if !ok {
				continue
			}
			val, vp, ok := matchValue(buf, lim, hp, crlf, true, true)
			if !ok {
				return RecvMore, CodeOK
			}
			rule.set(&parsed, val)
			pos = vp
			matchedHeader = true
			break
		}
		if matchedHeader {
			continue
		}

		// Unrecognized header line: skip its value without aborting.
		_, vp, ok := matchValue(buf, lim, pos, crlf, false, false)
		if !ok {
			return RecvMore, CodeOK
		}
		pos = vp
	}

	*out = parsed
	return validateRequest(buf, out, spMap, peer)
}

func validateRequest(buf []byte, p *ParsedRequest, spMap *SPTokenMap, peer PeerChecker) (Outcome, ResponseCode) {
	if !p.Host.set || !p.Upgrade.set || !p.Conn.set || !p.Key.set || !p.Version.set {
		return Invalid, CodeWSProto
	}
	if !spanEqualFold(buf, p.Version, RequiredWebSocketVersion) {
		return Invalid, CodeWSVersion
	}
	if !spanEqualFold(buf, p.Upgrade, "websocket") {
		return Invalid, CodeWSProto
	}
	if !spanEqualFold(buf, p.Conn, "Upgrade") {
		return Invalid, CodeWSProto
	}

	if p.Protocol.set {
		token := string(p.Protocol.Bytes(buf))
		id, found := spMap.ID(token)
		if !found {
			return Invalid, CodeUnknownType
		}
		if !peer.IsPeer(id) {
			return Invalid, CodeNotPeer
		}
		return Valid, CodeOK
	}

	if !peer.IsPeer(SPPair) {
		return Invalid, CodeNotPeer
	}
	return Valid, CodeOK
}
