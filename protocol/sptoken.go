// File: protocol/sptoken.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// C10: the ten-entry SP↔token lookup table. The handshake FSM never
// names an SP kind itself — per the Design Notes, the cycle between this
// transport and an SP registry is resolved by injecting both the table
// and a PeerChecker at construction, so this package knows SP identifiers
// only as opaque small integers it was handed a table for.

package protocol

import "strings"

// SPID is an opaque Scalability-Protocol socket-kind identifier. Its
// concrete values are a convention shared between the injected
// SPTokenMap and the injected PeerChecker; this package only compares
// and looks them up.
type SPID int

// The ten SP kinds spec.md's GLOSSARY names, in the table order
// spec.md §4.10 fixes. A caller wiring its own registry is free to use
// different values, but DefaultSPTokenMap uses these.
const (
	SPPair SPID = iota
	SPReq
	SPRep
	SPPub
	SPSub
	SPSurveyor
	SPRespondent
	SPPush
	SPPull
	SPBus
)

type spEntry struct {
	id    SPID
	token string
}

// SPTokenMap is an immutable bidirectional SPID<->token lookup.
type SPTokenMap struct {
	entries []spEntry
}

// DefaultSPTokenMap returns the ten-entry table spec.md §4.10 fixes,
// byte-for-byte.
func DefaultSPTokenMap() *SPTokenMap {
	return &SPTokenMap{entries: []spEntry{
		{SPPair, "x-nanomsg-pair"},
		{SPReq, "x-nanomsg-req"},
		{SPRep, "x-nanomsg-rep"},
		{SPPub, "x-nanomsg-pub"},
		{SPSub, "x-nanomsg-sub"},
		{SPSurveyor, "x-nanomsg-surveyor"},
		{SPRespondent, "x-nanomsg-respondent"},
		{SPPush, "x-nanomsg-push"},
		{SPPull, "x-nanomsg-pull"},
		{SPBus, "x-nanomsg-bus"},
	}}
}

// Token looks up the wire token for id. Lookups are linear over ten
// entries, which is cheaper than a map for a table this size.
func (m *SPTokenMap) Token(id SPID) (string, bool) {
	for _, e := range m.entries {
		if e.id == id {
			return e.token, true
		}
	}
	return "", false
}

// ID looks up the SPID for a wire token, case-insensitively (spec.md
// §4.10: "case-insensitive matching is acceptable on the receiving side").
func (m *SPTokenMap) ID(token string) (SPID, bool) {
	for _, e := range m.entries {
		if strings.EqualFold(e.token, token) {
			return e.id, true
		}
	}
	return 0, false
}

// PeerChecker answers whether the local SP can legally peer with a
// remote SP. The handshake core is only ever given this capability; it
// never enumerates SP kinds on its own (spec.md §1 scope note).
type PeerChecker interface {
	IsPeer(remote SPID) bool
}

// PeerCheckerFunc adapts a function to PeerChecker.
type PeerCheckerFunc func(remote SPID) bool

func (f PeerCheckerFunc) IsPeer(remote SPID) bool { return f(remote) }
