package pk2

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	r := require.New(t)

	h := defaultHeader()
	buf := make([]byte, pk2HeaderLen)
	h.writeTo(buf)

	got, err := parseHeader(buf)
	r.NoError(err)
	r.Equal(h, got)
	r.NoError(got.validateSignature())
}

func TestHeaderEncryptedVerify(t *testing.T) {
	r := require.New(t)

	c, err := newCipher([]byte("roundtrip_key"))
	r.NoError(err)
	r.NotNil(c)

	h := newEncryptedHeader(c)
	r.True(h.encrypted)
	r.NoError(h.verifyKey(c))

	wrong, err := newCipher([]byte("wrong_key"))
	r.NoError(err)
	r.Error(h.verifyKey(wrong))

	// Only the first 3 bytes of verify are ever meaningful; the rest must be
	// zeroed on write even though a freshly encrypted checksum would differ
	// there.
	for _, b := range h.verify[pk2ChecksumStored:] {
		r.Zero(b)
	}
}

func TestHeaderRejectsBadSignature(t *testing.T) {
	r := require.New(t)

	h := defaultHeader()
	h.signature[0] = 'X'
	r.True(IsCorruptedFile(h.validateSignature()))
}

func TestHeaderRejectsBadVersion(t *testing.T) {
	r := require.New(t)

	h := defaultHeader()
	h.version = 1
	err := h.validateSignature()
	r.Error(err)
	var e *Error
	r.ErrorAs(err, &e)
	r.Equal(KindUnsupportedVersion, e.Kind())
}
