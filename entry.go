package pk2

const entrySize = 128

type entryTag uint8

const (
	tagEmpty entryTag = iota
	tagDirectory
	tagFile
)

// entry is one 128-byte slot in a directory block: empty, a directory, or a
// file. The next_block link lives at a fixed byte offset regardless of tag
// so block-chain traversal never needs to know an entry's kind.
type entry struct {
	tag         entryTag
	name        string
	accessTime  filetime
	createTime  filetime
	modifyTime  filetime
	position    uint64 // children ChainOffset for directories, data StreamOffset for files
	size        uint32 // file size; always 0 for directories
	nextBlock   BlockOffset
}

func newEmptyEntry(nextBlock BlockOffset) entry {
	return entry{tag: tagEmpty, nextBlock: nextBlock}
}

func newDirectoryEntry(name string, children ChainOffset, nextBlock BlockOffset) entry {
	now := filetimeNow()
	return entry{
		tag:        tagDirectory,
		name:       name,
		accessTime: now, createTime: now, modifyTime: now,
		position:  uint64(children),
		nextBlock: nextBlock,
	}
}

func newFileEntry(name string, dataPos StreamOffset, size uint32, nextBlock BlockOffset) entry {
	now := filetimeNow()
	return entry{
		tag:        tagFile,
		name:       name,
		accessTime: now, createTime: now, modifyTime: now,
		position:  uint64(dataPos),
		size:      size,
		nextBlock: nextBlock,
	}
}

func (e entry) isEmpty() bool     { return e.tag == tagEmpty }
func (e entry) isDirectory() bool { return e.tag == tagDirectory }
func (e entry) isFile() bool      { return e.tag == tagFile }

// childrenOffset returns the chain offset of a directory's children, or
// false if e is not a directory.
func (e entry) childrenOffset() (ChainOffset, bool) {
	if e.tag != tagDirectory {
		return 0, false
	}
	return ChainOffset(e.position), true
}

// fileData returns a file's (data offset, size), or false if e is not a
// file.
func (e entry) fileData() (StreamOffset, uint32, bool) {
	if e.tag != tagFile {
		return 0, 0, false
	}
	return StreamOffset(e.position), e.size, true
}

// setFileData overwrites a file entry's data extent in place.
func (e *entry) setFileData(pos StreamOffset, size uint32) {
	e.position = uint64(pos)
	e.size = size
}

// clear replaces e with an empty entry, preserving its next_block link.
func (e *entry) clear() {
	*e = newEmptyEntry(e.nextBlock)
}

// nameEqualFold reports whether e's name matches other under ASCII-only
// case folding. This is deliberately not unicode.EqualFold / strings.EqualFold
// semantics (which fold beyond ASCII) — the reference implementation only
// folds 'a'-'z' against 'A'-'Z', and names containing non-ASCII bytes must
// compare byte-for-byte outside that range.
func (e entry) nameEqualFold(other string) bool {
	if e.tag == tagEmpty {
		return false
	}
	return asciiEqualFold(e.name, other)
}

func asciiEqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca == cb {
			continue
		}
		if toLowerASCII(ca) != toLowerASCII(cb) {
			return false
		}
	}
	return true
}

func toLowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// parseEntry decodes a 128-byte on-disk entry. A zero position field in a
// non-empty entry is a corruption signal per spec and is rejected.
func parseEntry(buf []byte) (entry, error) {
	if len(buf) != entrySize {
		return entry{}, newErr(KindCorruptedFile, "entry: expected %d bytes, got %d", entrySize, len(buf))
	}
	c := cursor{buf: buf}
	tag := entryTag(c.u8())
	if tag == tagEmpty {
		c.skip(81 + 8 + 8 + 8 + 8 + 4)
		nextBlock := BlockOffset(c.u64())
		return newEmptyEntry(nextBlock), nil
	}
	if tag != tagDirectory && tag != tagFile {
		return entry{}, newErr(KindCorruptedFile, "entry: invalid tag %#x", tag)
	}
	name := decodeName(c.bytes(81))
	access := filetime{low: c.u32(), high: c.u32()}
	create := filetime{low: c.u32(), high: c.u32()}
	modify := filetime{low: c.u32(), high: c.u32()}
	position := c.u64()
	size := c.u32()
	nextBlock := BlockOffset(c.u64())
	c.skip(2)

	if position == 0 {
		return entry{}, newErr(KindCorruptedFile, "entry %q: zero position in non-empty entry", name)
	}

	e := entry{
		tag: tag, name: name,
		accessTime: access, createTime: create, modifyTime: modify,
		position: position, nextBlock: nextBlock,
	}
	if tag == tagFile {
		e.size = size
	}
	return e, nil
}

// writeTo encodes e into the 128-byte buf. Names longer than maxNameLen
// bytes after encoding are truncated.
func (e entry) writeTo(buf []byte) {
	w := writer{buf: buf[:entrySize]}
	w.putU8(uint8(e.tag))
	if e.tag == tagEmpty {
		w.skip(81 + 8 + 8 + 8 + 8 + 4)
		w.putU64(uint64(e.nextBlock))
		w.skip(2)
		return
	}
	var nameBuf [81]byte
	encodeName(nameBuf[:], e.name)
	w.putBytes(nameBuf[:])
	w.putU32(e.accessTime.low)
	w.putU32(e.accessTime.high)
	w.putU32(e.createTime.low)
	w.putU32(e.createTime.high)
	w.putU32(e.modifyTime.low)
	w.putU32(e.modifyTime.high)
	w.putU64(e.position)
	if e.tag == tagFile {
		w.putU32(e.size)
	} else {
		w.putU32(0)
	}
	w.putU64(uint64(e.nextBlock))
	w.skip(2)
}
