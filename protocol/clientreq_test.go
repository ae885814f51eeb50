package protocol

import "testing"

func TestFormatClientRequestRoundTripsThroughParser(t *testing.T) {
	spMap := DefaultSPTokenMap()
	buf := make([]byte, 512)
	var encodedKey [24]byte

	n, err := FormatClientRequest(buf, "/chat", "example.com", SPPub, spMap, encodedKey[:])
	if err != nil {
		t.Fatalf("FormatClientRequest: %v", err)
	}
	req := buf[:n]

	peer := PeerCheckerFunc(func(remote SPID) bool { return remote == SPPub })
	var out ParsedRequest
	outcome, code := ParseRequest(req, n, spMap, peer, &out)
	if outcome != Valid {
		t.Fatalf("generated request failed to parse: %v (code=%v): %q", outcome, code, req)
	}
	if string(out.Host.Bytes(req)) != "example.com" {
		t.Fatalf("host = %q", out.Host.Bytes(req))
	}
	if string(out.URI.Bytes(req)) != "/chat" {
		t.Fatalf("uri = %q", out.URI.Bytes(req))
	}
	if string(out.Key.Bytes(req)) != string(encodedKey[:]) {
		t.Fatalf("key mismatch: %q vs %q", out.Key.Bytes(req), encodedKey[:])
	}
	if string(out.Protocol.Bytes(req)) != "x-nanomsg-pub" {
		t.Fatalf("protocol = %q", out.Protocol.Bytes(req))
	}
}

func TestFormatClientRequestUnknownLocalSP(t *testing.T) {
	spMap := &SPTokenMap{}
	buf := make([]byte, 512)
	var encodedKey [24]byte
	_, err := FormatClientRequest(buf, "/", "h", SPPair, spMap, encodedKey[:])
	if err == nil {
		t.Fatal("expected error for SP with no token mapping")
	}
}

func TestFormatClientRequestKeyBufferTooSmall(t *testing.T) {
	spMap := DefaultSPTokenMap()
	buf := make([]byte, 512)
	small := make([]byte, 10)
	_, err := FormatClientRequest(buf, "/", "h", SPPair, spMap, small)
	if err == nil {
		t.Fatal("expected error for undersized encodedKeyOut")
	}
}
