package pk2

import (
	"bytes"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/korean"
)

// nameFieldLen is the size in bytes of an entry's name field, including its
// terminating NUL.
const nameFieldLen = 81

// maxNameLen is the largest a name may be after encoding: entry 81 is always
// NUL, so only 80 bytes of actual name content fit.
const maxNameLen = nameFieldLen - 1

// nameCodec controls how entry names are translated between the archive's
// byte representation and Go strings. The original game client encodes
// names as EUC-KR; this is the default to stay wire-compatible with real
// game archives, matching the encoding_rs::EUC_KR behavior the original
// implementation enables by default.
var nameCodec encoding.Encoding = korean.EUCKR

// decodeName strips trailing NULs from a raw 81-byte name field and decodes
// it using the active name codec. Decoding errors fall back to a lossy
// UTF-8 interpretation of the raw bytes, matching the reference
// implementation's non-euc-kr fallback path.
func decodeName(raw []byte) string {
	end := bytes.IndexByte(raw, 0)
	if end < 0 {
		end = len(raw)
	}
	raw = raw[:end]
	decoded, err := nameCodec.NewDecoder().Bytes(raw)
	if err != nil {
		return string(bytes.ToValidUTF8(raw, []byte("�")))
	}
	return string(decoded)
}

// encodeName encodes name with the active name codec and writes it,
// NUL-padded, into the 81-byte dst. Names whose encoded form exceeds
// maxNameLen bytes are truncated to fit; dst[80] is always left as NUL.
func encodeName(dst []byte, name string) {
	for i := range dst {
		dst[i] = 0
	}
	encoded, err := nameCodec.NewEncoder().Bytes([]byte(name))
	if err != nil {
		encoded = []byte(name)
	}
	if len(encoded) > maxNameLen {
		encoded = encoded[:maxNameLen]
	}
	copy(dst, encoded)
}
