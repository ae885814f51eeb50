// File: protocol/acceptkey.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// C5: accept-key derivation, base64(sha1(client_key ++ MAGIC_GUID)).

package protocol

// AcceptKeyLen is the fixed length of a derived accept key: base64 of a
// 20-byte SHA-1 digest is always 28 characters (padded).
const AcceptKeyLen = 28

// deriveAcceptKey writes the 28-byte accept key for clientKey into out,
// which must be at least AcceptKeyLen+1 bytes (base64Encode always wants
// one extra byte to NUL-terminate into).
func deriveAcceptKey(clientKey []byte, out []byte) error {
	if len(out) < AcceptKeyLen+1 {
		return errNoBufferSpace
	}
	h := newSHA1Hasher()
	h.write(clientKey)
	h.write([]byte(MagicGUID))
	digest := h.finalize()

	n, err := base64Encode(digest[:], out)
	if err != nil {
		return err
	}
	if n != AcceptKeyLen {
		return errNoBufferSpace
	}
	return nil
}
