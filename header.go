package pk2

import "bytes"

const (
	pk2Version       uint32 = 0x01000002
	pk2HeaderLen            = 256
	pk2ChecksumStored       = 3
)

// pk2Signature is the fixed 30-byte magic every archive begins with.
var pk2Signature = [30]byte{
	'J', 'o', 'y', 'M', 'a', 'x', ' ', 'F', 'i', 'l', 'e', ' ', 'M', 'a', 'n',
	'a', 'g', 'e', 'r', '!', '\n', 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// pk2Checksum is the plaintext encrypted (when the archive is encrypted) and
// compared, 3 bytes only, against the header's verify field to validate a
// key.
var pk2Checksum = [16]byte{'J', 'o', 'y', 'm', 'a', 'x', ' ', 'P', 'a', 'k', ' ', 'F', 'i', 'l', 'e', 0}

// header is the 256-byte archive preamble.
type header struct {
	signature [30]byte
	version   uint32
	encrypted bool
	verify    [16]byte
	reserved  [205]byte
}

func defaultHeader() header {
	return header{signature: pk2Signature, version: pk2Version, verify: pk2Checksum}
}

// newEncryptedHeader builds a header for a freshly created encrypted
// archive: the verify field holds the encrypted checksum with its first 3
// bytes meaningful and the remaining 13 zeroed, matching what real game
// archives look like on disk.
func newEncryptedHeader(c *cipher) header {
	h := defaultHeader()
	checksum := pk2Checksum
	c.encrypt(checksum[:])
	h.verify = [16]byte{}
	copy(h.verify[:pk2ChecksumStored], checksum[:pk2ChecksumStored])
	h.encrypted = true
	return h
}

func parseHeader(buf []byte) (header, error) {
	if len(buf) != pk2HeaderLen {
		return header{}, newErr(KindCorruptedFile, "header: expected %d bytes, got %d", pk2HeaderLen, len(buf))
	}
	c := cursor{buf: buf}
	var h header
	copy(h.signature[:], c.bytes(30))
	h.version = c.u32()
	h.encrypted = c.u8() != 0
	copy(h.verify[:], c.bytes(16))
	copy(h.reserved[:], c.bytes(205))
	return h, nil
}

func (h header) writeTo(buf []byte) {
	w := writer{buf: buf[:pk2HeaderLen]}
	w.putBytes(h.signature[:])
	w.putU32(h.version)
	if h.encrypted {
		w.putU8(1)
	} else {
		w.putU8(0)
	}
	w.putBytes(h.verify[:])
	w.putBytes(h.reserved[:])
}

// validateSignature checks the signature and version fields, returning the
// corresponding error kinds on mismatch.
func (h header) validateSignature() error {
	if h.signature != pk2Signature {
		return newErr(KindCorruptedFile, "header: signature mismatch")
	}
	if h.version != pk2Version {
		return newErr(KindUnsupportedVersion, "header: unsupported version %#x", h.version)
	}
	return nil
}

// verifyKey checks the header's 3-byte verify prefix against the checksum
// encrypted with c, per spec: only the first 3 bytes are ever compared.
func (h header) verifyKey(c *cipher) error {
	checksum := pk2Checksum
	c.encrypt(checksum[:])
	if !bytes.Equal(checksum[:pk2ChecksumStored], h.verify[:pk2ChecksumStored]) {
		return newErr(KindInvalidKey, "header: key verification failed")
	}
	return nil
}
