package protocol

import (
	"crypto/sha1"
	"encoding/hex"
	"math/rand"
	"testing"
)

func TestSHA1EmptyMessage(t *testing.T) {
	h := newSHA1Hasher()
	got := h.finalize()
	want := sha1.Sum(nil)
	if got != want {
		t.Fatalf("got %x want %x", got, want)
	}
}

func TestSHA1MatchesReferenceVector(t *testing.T) {
	h := newSHA1Hasher()
	h.write([]byte("dGhlIHNhbXBsZSBub25jZQ==" + MagicGUID))
	got := h.finalize()
	want := sha1.Sum([]byte("dGhlIHNhbXBsZSBub25jZQ==" + MagicGUID))
	if got != want {
		t.Fatalf("got %s want %s", hex.EncodeToString(got[:]), hex.EncodeToString(want[:]))
	}
}

func TestSHA1MatchesCryptoSHA1Randomized(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for trial := 0; trial < 32; trial++ {
		n := r.Intn(300)
		buf := make([]byte, n)
		r.Read(buf)

		h := newSHA1Hasher()
		h.write(buf)
		got := h.finalize()
		want := sha1.Sum(buf)
		if got != want {
			t.Fatalf("trial %d (n=%d): got %x want %x", trial, n, got, want)
		}
	}
}

func TestSHA1SpansMultipleBlocks(t *testing.T) {
	buf := make([]byte, 200)
	for i := range buf {
		buf[i] = byte(i)
	}
	h := newSHA1Hasher()
	h.write(buf)
	got := h.finalize()
	want := sha1.Sum(buf)
	if got != want {
		t.Fatalf("got %x want %x", got, want)
	}
}
