package pk2

import "os"

// rootChainOffset is where the root directory's first (and, absent any
// files, only) block always lives: immediately after the fixed 256-byte
// header.
const rootChainOffset ChainOffset = ChainOffset(pk2HeaderLen)

// Archive is an open PK2 virtual filesystem: a stream plus the fully parsed
// chain index built from it. All mutation methods serialize through locker.
type Archive struct {
	stream         Stream
	cipher         *cipher
	header         header
	index          *ChainIndex
	locker         Locker
	autoTouchMTime bool
}

// Open reads an existing archive from stream. key is the Blowfish key used
// to open an encrypted archive; pass "" for an unencrypted one. Open drives
// the chain-index builder to completion before returning, so every
// subsequent lookup is an in-memory map walk.
func Open(stream Stream, key string, opts ...Option) (*Archive, error) {
	return open(stream, key, opts...)
}

// OpenFile is a convenience wrapper around Open for archives backed by a
// real file on disk.
func OpenFile(name string, key string, opts ...Option) (*Archive, error) {
	f, err := os.OpenFile(name, os.O_RDWR, 0)
	if err != nil {
		return nil, wrapIO(err)
	}
	a, err := open(f, key, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	return a, nil
}

func open(s Stream, key string, opts ...Option) (*Archive, error) {
	cfg := applyOptions(opts)

	hbuf := make([]byte, pk2HeaderLen)
	if err := readAt(s, 0, hbuf); err != nil {
		return nil, err
	}
	h, err := parseHeader(hbuf)
	if err != nil {
		return nil, err
	}
	if err := h.validateSignature(); err != nil {
		return nil, err
	}

	var c *cipher
	if h.encrypted {
		c, err = newCipher([]byte(key))
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, newErr(KindInvalidKey, "archive is encrypted but no key was supplied")
		}
		if err := h.verifyKey(c); err != nil {
			return nil, err
		}
	}

	parser := newChainIndexParser(rootChainOffset)
	index, err := runChainIndexParser(s, c, parser)
	if err != nil {
		return nil, err
	}

	return &Archive{
		stream: s, cipher: c, header: h, index: index,
		locker: cfg.locker, autoTouchMTime: cfg.autoTouchMTime,
	}, nil
}

// Create initializes a brand new, empty archive on stream: a header
// followed by a root block containing only the self-referencing "."
// directory entry.
func Create(stream Stream, key string, opts ...Option) (*Archive, error) {
	return create(stream, key, opts...)
}

// CreateFile is a convenience wrapper around Create for archives backed by
// a real file on disk, truncating any existing file of that name.
func CreateFile(name string, key string, opts ...Option) (*Archive, error) {
	f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, wrapIO(err)
	}
	a, err := create(f, key, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	return a, nil
}

func create(s Stream, key string, opts ...Option) (*Archive, error) {
	cfg := applyOptions(opts)

	var c *cipher
	var h header
	if key != "" {
		var err error
		c, err = newCipher([]byte(key))
		if err != nil {
			return nil, err
		}
		h = newEncryptedHeader(c)
	} else {
		h = defaultHeader()
	}

	hbuf := make([]byte, pk2HeaderLen)
	h.writeTo(hbuf)
	if err := writeAt(s, 0, hbuf); err != nil {
		return nil, err
	}

	root := emptyBlock(0)
	root[0] = newDirectoryEntry(".", rootChainOffset, 0)
	if err := writeBlockAt(s, c, rootChainOffset.AsBlockOffset(), root); err != nil {
		return nil, err
	}

	parser := newChainIndexParser(rootChainOffset)
	index, err := runChainIndexParser(s, c, parser)
	if err != nil {
		return nil, err
	}

	return &Archive{
		stream: s, cipher: c, header: h, index: index,
		locker: cfg.locker, autoTouchMTime: cfg.autoTouchMTime,
	}, nil
}

// Root returns a handle to the archive's root directory.
func (a *Archive) Root() *Directory {
	return &Directory{archive: a, chain: rootChainOffset}
}

// OpenFileHandle opens path for reading. path must be slash- or
// backslash-rooted, e.g. "/textures/icon.ddj".
func (a *Archive) OpenFileHandle(path string) (*File, error) {
	a.locker.Lock()
	defer a.locker.Unlock()

	_, _, _, e, err := resolveToEntry(a.index, rootChainOffset, path)
	if err != nil {
		return nil, err
	}
	pos, size, ok := e.fileData()
	if !ok {
		return nil, newErr(KindExpectedFile, "open %q: not a file", path)
	}
	return &File{archive: a, name: e.name, pos: pos, size: size, access: e.accessTime, modify: e.modifyTime}, nil
}

// OpenFileMut opens path for reading and writing.
func (a *Archive) OpenFileMut(path string) (*FileMut, error) {
	a.locker.Lock()
	defer a.locker.Unlock()

	parent, blockIdx, entryIdx, e, err := resolveToEntry(a.index, rootChainOffset, path)
	if err != nil {
		return nil, err
	}
	if !e.isFile() {
		return nil, newErr(KindExpectedFile, "open %q: not a file", path)
	}
	return &FileMut{
		archive: a, chain: parent, blockIdx: blockIdx, entryIdx: entryIdx,
		autoTouchMTime: a.autoTouchMTime,
	}, nil
}

// OpenDirectory opens path as a directory handle. "/" alone opens the root.
func (a *Archive) OpenDirectory(path string) (*Directory, error) {
	if path == "/" || path == "\\" {
		return a.Root(), nil
	}

	a.locker.Lock()
	defer a.locker.Unlock()

	chain, err := resolveDirectoryPath(a.index, rootChainOffset, path)
	if err != nil {
		return nil, err
	}
	return &Directory{archive: a, chain: chain}, nil
}

// resolveDirectoryPath treats path as entirely composed of directory
// components, used both by OpenDirectory and internally.
func resolveDirectoryPath(ci *ChainIndex, start ChainOffset, path string) (ChainOffset, error) {
	components, err := splitPath(path)
	if err != nil {
		return 0, err
	}
	return resolveToChain(ci, start, components)
}

// DeleteFile resolves path to a file entry and clears it in place. The
// entry's tag becomes empty and its next_block link is preserved; the data
// extent itself is never reclaimed.
func (a *Archive) DeleteFile(path string) error {
	a.locker.Lock()
	defer a.locker.Unlock()
	return a.deleteFileLocked(path)
}
