package pk2

import "io"

// memBuffer is a minimal in-memory Stream: a growable byte slice addressed
// by Seek. An archive's own chain-index builder reads back every block it
// just wrote (even right after Create), so no archive-backed Stream is ever
// write-only; that rules out writerseeker.WriterSeeker, whose Reader only
// snapshots a finished write rather than supporting interleaved read/write,
// for this role. This tiny type fills the gap instead.
type memBuffer struct {
	buf []byte
	pos int64
}

func newMemBuffer(initial []byte) *memBuffer {
	buf := make([]byte, len(initial))
	copy(buf, initial)
	return &memBuffer{buf: buf}
}

func (m *memBuffer) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *memBuffer) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	n := copy(m.buf[m.pos:end], p)
	m.pos = end
	return n, nil
}

func (m *memBuffer) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = m.pos + offset
	case io.SeekEnd:
		newPos = int64(len(m.buf)) + offset
	default:
		return 0, newErr(KindIO, "memBuffer: invalid whence %d", whence)
	}
	if newPos < 0 {
		return 0, newErr(KindIO, "memBuffer: negative seek position")
	}
	m.pos = newPos
	return newPos, nil
}

// Bytes returns the buffer's current contents. The returned slice aliases
// the buffer's storage and must not be mutated by the caller.
func (m *memBuffer) Bytes() []byte { return m.buf }

// CreateInMemory creates a brand new, empty archive entirely in memory,
// encrypted with key (pass "" for an unencrypted archive). This is the
// library's equivalent of opening a fresh file, minus the filesystem.
func CreateInMemory(key string, opts ...Option) (*Archive, error) {
	return create(newMemBuffer(nil), key, opts...)
}

// OpenInMemory opens an archive whose full byte image is already in data
// (e.g. loaded from a network response or a prior CreateInMemory), for
// further reading or mutation.
func OpenInMemory(data []byte, key string, opts ...Option) (*Archive, error) {
	return open(newMemBuffer(data), key, opts...)
}

// Bytes returns the current full byte image of an archive that was created
// or opened via CreateInMemory/OpenInMemory. It panics if called on an
// archive backed by a different kind of Stream.
func (a *Archive) Bytes() []byte {
	mb, ok := a.stream.(*memBuffer)
	if !ok {
		panic("pk2: Bytes called on an archive not backed by an in-memory stream")
	}
	return mb.Bytes()
}
