package api

import "testing"

func TestErrorFormatsWithoutContext(t *testing.T) {
	err := NewError(ErrCodeTimeout, "no completion within budget")
	want := "timeout: no completion within budget"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorFormatsWithContext(t *testing.T) {
	err := NewError(ErrCodeProtocolIncompatible, "bad version").WithContext("version", "8")
	if err.Code != ErrCodeProtocolIncompatible {
		t.Fatalf("Code = %v", err.Code)
	}
	if err.Context["version"] != "8" {
		t.Fatalf("Context[version] = %v", err.Context["version"])
	}
}

func TestErrorCodeStringCoversAllKinds(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeOK, ErrCodeProtocolMalformed, ErrCodeProtocolIncompatible,
		ErrCodePeerIncompatible, ErrCodeBufferExhausted, ErrCodeTimeout,
		ErrCodeTransportError,
	}
	seen := map[string]bool{}
	for _, c := range codes {
		s := c.String()
		if s == "" {
			t.Fatalf("empty String() for code %d", c)
		}
		seen[s] = true
	}
	if len(seen) != len(codes) {
		t.Fatalf("expected %d distinct strings, got %d", len(codes), len(seen))
	}
}
