package pk2

import "encoding/binary"

// cursor is a small helper for sequentially decoding little-endian
// fixed-width fields out of a fixed-size buffer, in the spirit of
// icza/mpq's binary.Read-driven header parsing but specialized for parsing
// out of an in-memory slice rather than an io.Reader (entries and blocks are
// always read whole before being decoded, so there is no I/O error to
// thread through here — only slicing, which is infallible once the buffer
// length is confirmed by the caller).
type cursor struct {
	buf []byte
}

func (c *cursor) u8() uint8 {
	v := c.buf[0]
	c.buf = c.buf[1:]
	return v
}

func (c *cursor) u16() uint16 {
	v := binary.LittleEndian.Uint16(c.buf)
	c.buf = c.buf[2:]
	return v
}

func (c *cursor) u32() uint32 {
	v := binary.LittleEndian.Uint32(c.buf)
	c.buf = c.buf[4:]
	return v
}

func (c *cursor) u64() uint64 {
	v := binary.LittleEndian.Uint64(c.buf)
	c.buf = c.buf[8:]
	return v
}

func (c *cursor) bytes(n int) []byte {
	v := c.buf[:n]
	c.buf = c.buf[n:]
	return v
}

func (c *cursor) skip(n int) {
	c.buf = c.buf[n:]
}

// writer is the encoding counterpart of cursor.
type writer struct {
	buf []byte
}

func (w *writer) putU8(v uint8) {
	w.buf[0] = v
	w.buf = w.buf[1:]
}

func (w *writer) putU16(v uint16) {
	binary.LittleEndian.PutUint16(w.buf, v)
	w.buf = w.buf[2:]
}

func (w *writer) putU32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf, v)
	w.buf = w.buf[4:]
}

func (w *writer) putU64(v uint64) {
	binary.LittleEndian.PutUint64(w.buf, v)
	w.buf = w.buf[8:]
}

func (w *writer) putBytes(v []byte) {
	n := copy(w.buf, v)
	w.buf = w.buf[n:]
}

func (w *writer) skip(n int) {
	for i := 0; i < n; i++ {
		w.buf[i] = 0
	}
	w.buf = w.buf[n:]
}
