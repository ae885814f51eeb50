package protocol

import "testing"

// TestAcceptKeyRFC6455Vector is the canonical example from RFC 6455 §1.3
// and spec.md §8 law 3.
func TestAcceptKeyRFC6455Vector(t *testing.T) {
	out := make([]byte, AcceptKeyLen+1)
	if err := deriveAcceptKey([]byte("dGhlIHNhbXBsZSBub25jZQ=="), out); err != nil {
		t.Fatal(err)
	}
	got := string(out[:AcceptKeyLen])
	want := "s3pPLMBiTxaQ9kYGzzhZRbK+xOo="
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestAcceptKeyAlwaysTwentyEightBytes(t *testing.T) {
	keys := [][]byte{
		[]byte("dGhlIHNhbXBsZSBub25jZQ=="),
		[]byte("x3JJHMbDL1EzLkh9GBhXDw=="),
		[]byte("AAAAAAAAAAAAAAAAAAAAAA=="),
	}
	for _, k := range keys {
		out := make([]byte, AcceptKeyLen+1)
		if err := deriveAcceptKey(k, out); err != nil {
			t.Fatal(err)
		}
		if len(out[:AcceptKeyLen]) != AcceptKeyLen {
			t.Fatalf("unexpected length for key %q", k)
		}
	}
}

func TestAcceptKeyNoBufferSpace(t *testing.T) {
	out := make([]byte, AcceptKeyLen) // missing the +1
	if err := deriveAcceptKey([]byte("dGhlIHNhbXBsZSBub25jZQ=="), out); err == nil {
		t.Fatal("expected no-buffer-space error")
	}
}
