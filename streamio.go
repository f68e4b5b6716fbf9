package pk2

import "io"

// Stream is the host byte source an archive is built on: a seekable,
// readable, writable sink. A plain *os.File satisfies it, and so does
// memBuffer for in-memory archives. The library never assumes concurrent
// callers — access is always serialized through a Locker — so Stream gets by
// with Seek+Read/Write rather than requiring ReaderAt/WriterAt.
type Stream interface {
	io.Reader
	io.Writer
	io.Seeker
}

func readAt(s Stream, off int64, buf []byte) error {
	if _, err := s.Seek(off, io.SeekStart); err != nil {
		return wrapIO(err)
	}
	if _, err := io.ReadFull(s, buf); err != nil {
		return wrapIO(err)
	}
	return nil
}

func writeAt(s Stream, off int64, buf []byte) error {
	if _, err := s.Seek(off, io.SeekStart); err != nil {
		return wrapIO(err)
	}
	if _, err := s.Write(buf); err != nil {
		return wrapIO(err)
	}
	return nil
}

func streamLen(s Stream) (int64, error) {
	n, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, wrapIO(err)
	}
	return n, nil
}

// appendAt writes buf at the current end of the stream and returns the
// offset it was written at.
func appendAt(s Stream, buf []byte) (StreamOffset, error) {
	n, err := streamLen(s)
	if err != nil {
		return 0, err
	}
	if err := writeAt(s, n, buf); err != nil {
		return 0, err
	}
	return StreamOffset(n), nil
}

func readBlockAt(s Stream, c *cipher, offset BlockOffset) (block, error) {
	buf := make([]byte, blockLen)
	if err := readAt(s, int64(offset), buf); err != nil {
		return block{}, err
	}
	c.decrypt(buf)
	return parseBlock(buf)
}

func writeBlockAt(s Stream, c *cipher, offset BlockOffset, b block) error {
	buf := make([]byte, blockLen)
	b.writeTo(buf)
	c.encrypt(buf)
	return writeAt(s, int64(offset), buf)
}

// appendBlock writes a brand new block at end-of-stream and reports where it
// landed.
func appendBlock(s Stream, c *cipher, b block) (BlockOffset, error) {
	buf := make([]byte, blockLen)
	b.writeTo(buf)
	c.encrypt(buf)
	off, err := appendAt(s, buf)
	if err != nil {
		return 0, err
	}
	return BlockOffset(off), nil
}

func writeEntryAt(s Stream, c *cipher, offset StreamOffset, e entry) error {
	buf := make([]byte, entrySize)
	e.writeTo(buf)
	c.encrypt(buf)
	return writeAt(s, int64(offset), buf)
}

// readFileDataAt reads size bytes of file content. File contents are never
// run through the cipher — only directory blocks, entries, and the header
// checksum are obfuscated; the reference implementation's data buffer
// reads/writes never touch its Blowfish instance.
func readFileDataAt(s Stream, offset StreamOffset, size uint32) ([]byte, error) {
	buf := make([]byte, size)
	if size == 0 {
		return buf, nil
	}
	if err := readAt(s, int64(offset), buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// writeFileData appends buf at end-of-stream, returning the offset it
// landed at.
func writeFileData(s Stream, buf []byte) (StreamOffset, error) {
	return appendAt(s, buf)
}

// overwriteFileData writes buf in place at offset, for the FileMut flush
// path where new_len <= old_size.
func overwriteFileData(s Stream, offset StreamOffset, buf []byte) error {
	return writeAt(s, int64(offset), buf)
}

// runChainIndexParser drives a chainIndexParser to completion by repeatedly
// reading and decrypting the block it asks for. This is the synchronous
// driver loop; the parser itself never touches s or c.
func runChainIndexParser(s Stream, c *cipher, p *chainIndexParser) (*ChainIndex, error) {
	for {
		req, ok := p.wantsReadAt()
		if !ok {
			break
		}
		b, err := readBlockAt(s, c, req.offset)
		if err != nil {
			p.abandon()
			return nil, err
		}
		if err := p.progress(b); err != nil {
			p.abandon()
			return nil, err
		}
	}
	index, _ := p.finish()
	return index, nil
}
