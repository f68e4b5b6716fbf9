package pk2

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCipherRoundTrip(t *testing.T) {
	r := require.New(t)

	c, err := newCipher([]byte("169841"))
	r.NoError(err)
	r.NotNil(c)

	plain := []byte("0123456789ABCDEF") // 2 blocks
	buf := append([]byte(nil), plain...)

	c.encrypt(buf)
	r.NotEqual(plain, buf)

	c.decrypt(buf)
	r.Equal(plain, buf)
}

func TestCipherEmptyKeyIsNoCipher(t *testing.T) {
	r := require.New(t)

	c, err := newCipher(nil)
	r.NoError(err)
	r.Nil(c)

	// A nil cipher must be safe to call encrypt/decrypt on: both are no-ops.
	buf := []byte("01234567")
	c.encrypt(buf)
	r.Equal([]byte("01234567"), buf)
}

func TestDeriveKeyAppliesSalt(t *testing.T) {
	r := require.New(t)

	key := []byte("169841")
	derived := deriveKey(key)
	r.Len(derived, len(key))
	for i, b := range key {
		r.Equal(b^pk2Salt[i], derived[i])
	}
}
