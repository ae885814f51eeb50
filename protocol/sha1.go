// File: protocol/sha1.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// C3: a byte-at-a-time, single-use SHA-1 hasher. Inlined rather than
// built on crypto/sha1 because spec.md explicitly disclaims any need for
// collision/preimage resistance here (RFC 6455 §10.8) — the accept-key
// derivation only needs a digest that every RFC 6455 peer computes
// identically, bit-for-bit. See spec.md §4.3.

package protocol

import "encoding/binary"

type sha1Hasher struct {
	h        [5]uint32
	block    [64]byte
	blockLen int
	msgLen   uint64 // bytes of real message content hashed so far
}

func newSHA1Hasher() *sha1Hasher {
	return &sha1Hasher{h: [5]uint32{
		0x67452301, 0xEFCDAB89, 0x98BADCFE, 0x10325476, 0xC3D2E1F0,
	}}
}

// hashByte feeds one message byte into the hasher, compressing the block
// once it fills.
func (s *sha1Hasher) hashByte(b byte) {
	s.block[s.blockLen] = b
	s.blockLen++
	s.msgLen++
	if s.blockLen == 64 {
		s.compress()
		s.blockLen = 0
	}
}

// write feeds p one byte at a time, per spec.md's byte-at-a-time state model.
func (s *sha1Hasher) write(p []byte) {
	for _, b := range p {
		s.hashByte(b)
	}
}

func rotl32(x uint32, n uint) uint32 { return x<<n | x>>(32-n) }

func (s *sha1Hasher) compress() {
	var w [80]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(s.block[i*4:])
	}
	for i := 16; i < 80; i++ {
		w[i] = rotl32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}

	a, b, c, d, e := s.h[0], s.h[1], s.h[2], s.h[3], s.h[4]
	for i := 0; i < 80; i++ {
		var f, k uint32
		switch {
		case i < 20:
			f, k = (b&c)|(^b&d), 0x5A827999
		case i < 40:
			f, k = b^c^d, 0x6ED9EBA1
		case i < 60:
			f, k = (b&c)|(b&d)|(c&d), 0x8F1BBCDC
		default:
			f, k = b^c^d, 0xCA62C1D6
		}
		temp := rotl32(a, 5) + f + e + k + w[i]
		e, d, c, b, a = d, c, rotl32(b, 30), a, temp
	}

	s.h[0] += a
	s.h[1] += b
	s.h[2] += c
	s.h[3] += d
	s.h[4] += e
}

// finalize appends the 0x80 terminator, zero-pads to offset 56 (mod 64),
// appends the original bit length big-endian, and returns the 20-byte
// digest. The hasher must not be reused afterward.
func (s *sha1Hasher) finalize() [20]byte {
	bitLen := s.msgLen * 8

	s.hashByte(0x80)
	for s.blockLen != 56 {
		s.hashByte(0)
	}
	var lenBytes [8]byte
	binary.BigEndian.PutUint64(lenBytes[:], bitLen)
	for _, b := range lenBytes {
		s.hashByte(b)
	}

	var out [20]byte
	for i, h := range s.h {
		binary.BigEndian.PutUint32(out[i*4:], h)
	}
	return out
}
