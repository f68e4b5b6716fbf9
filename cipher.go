package pk2

import "golang.org/x/crypto/blowfish"

// pk2Salt is XORed into the first bytes of a user-supplied key before it is
// handed to Blowfish. This is not a secret — it is a fixed transform the
// original game client applies, and any compatible implementation must
// reproduce it exactly.
var pk2Salt = [10]byte{0x03, 0xF8, 0xE4, 0x44, 0x88, 0x99, 0x3F, 0x64, 0xFE, 0x35}

// cipher wraps a blowfish.Cipher to operate in ECB mode over buffers whose
// length is a multiple of the cipher's 8-byte block size. Every block on
// disk (headers excepted) is naturally 8-byte aligned, so callers never need
// to pad.
type cipher struct {
	bf *blowfish.Cipher
}

// newCipher derives the final Blowfish key from key (XOR the first
// min(len(key), 10) bytes with pk2Salt, truncate to at most 56 bytes) and
// constructs the cipher. An empty key means "no cipher" and is reported as a
// nil *cipher with a nil error.
func newCipher(key []byte) (*cipher, error) {
	if len(key) == 0 {
		return nil, nil
	}
	derived := deriveKey(key)
	bf, err := blowfish.NewCipher(derived)
	if err != nil {
		return nil, newErr(KindInvalidKey, "derive blowfish cipher: %w", err)
	}
	return &cipher{bf: bf}, nil
}

func deriveKey(key []byte) []byte {
	n := len(key)
	if n > 56 {
		n = 56
	}
	derived := make([]byte, n)
	copy(derived, key[:n])
	saltLen := n
	if saltLen > len(pk2Salt) {
		saltLen = len(pk2Salt)
	}
	for i := 0; i < saltLen; i++ {
		derived[i] ^= pk2Salt[i]
	}
	return derived
}

// blockSize is Blowfish's fixed block size, 8 bytes.
const blockSize = 8

// encrypt encrypts buf in place using ECB mode. len(buf) must be a multiple
// of blockSize. A nil cipher (unencrypted archive) is a no-op.
func (c *cipher) encrypt(buf []byte) {
	if c == nil {
		return
	}
	for i := 0; i+blockSize <= len(buf); i += blockSize {
		c.bf.Encrypt(buf[i:i+blockSize], buf[i:i+blockSize])
	}
}

// decrypt decrypts buf in place using ECB mode. len(buf) must be a multiple
// of blockSize. A nil cipher (unencrypted archive) is a no-op.
func (c *cipher) decrypt(buf []byte) {
	if c == nil {
		return
	}
	for i := 0; i+blockSize <= len(buf); i += blockSize {
		c.bf.Decrypt(buf[i:i+blockSize], buf[i:i+blockSize])
	}
}
