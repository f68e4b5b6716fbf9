package pk2

import (
	"io"
	"math"
)

// maxFileSize is the largest size a file entry's 4-byte size field can hold.
const maxFileSize = math.MaxUint32

// FileMut is a read-write handle to a file. Its edits are buffered entirely
// in memory and only reconciled to the stream on Flush (or Close, which
// flushes and swallows the error — use Flush directly to observe it).
type FileMut struct {
	archive        *Archive
	chain          ChainOffset
	blockIdx       int
	entryIdx       int
	buffered       []byte
	loaded         bool
	cursor         int64
	autoTouchMTime bool
	skipAutoTouch  bool
}

func (fm *FileMut) currentEntry() entry {
	bc, _ := fm.archive.index.get(fm.chain)
	return bc.entry(fm.blockIdx, fm.entryIdx)
}

// ensureLoaded lazily fills the buffered image from the stream the first
// time the handle is actually read from or written to.
func (fm *FileMut) ensureLoaded() error {
	if fm.loaded {
		return nil
	}
	e := fm.currentEntry()
	pos, size, _ := e.fileData()
	if size == 0 {
		fm.buffered = []byte{}
	} else {
		data, err := readFileDataAt(fm.archive.stream, pos, size)
		if err != nil {
			return err
		}
		fm.buffered = data
	}
	fm.loaded = true
	return nil
}

func (fm *FileMut) Read(p []byte) (int, error) {
	fm.archive.locker.Lock()
	defer fm.archive.locker.Unlock()

	if err := fm.ensureLoaded(); err != nil {
		return 0, err
	}
	if fm.cursor >= int64(len(fm.buffered)) {
		return 0, io.EOF
	}
	n := copy(p, fm.buffered[fm.cursor:])
	fm.cursor += int64(n)
	return n, nil
}

// Write mutates the buffered image starting at the current cursor. Per the
// format's size limit, a write whose end position would exceed
// maxFileSize is truncated to the largest prefix that fits; a cursor
// already beyond maxFileSize writes zero bytes rather than overflow.
func (fm *FileMut) Write(p []byte) (int, error) {
	fm.archive.locker.Lock()
	defer fm.archive.locker.Unlock()

	if err := fm.ensureLoaded(); err != nil {
		return 0, err
	}
	if fm.cursor < 0 || fm.cursor > maxFileSize {
		return 0, nil
	}
	end := fm.cursor + int64(len(p))
	if end > maxFileSize {
		end = maxFileSize
		p = p[:end-fm.cursor]
	}
	if end > int64(len(fm.buffered)) {
		grown := make([]byte, end)
		copy(grown, fm.buffered)
		fm.buffered = grown
	}
	n := copy(fm.buffered[fm.cursor:end], p)
	fm.cursor = end
	return n, nil
}

func (fm *FileMut) Seek(offset int64, whence int) (int64, error) {
	fm.archive.locker.Lock()
	defer fm.archive.locker.Unlock()

	if err := fm.ensureLoaded(); err != nil {
		return 0, err
	}
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = fm.cursor + offset
	case io.SeekEnd:
		newPos = int64(len(fm.buffered)) + offset
	default:
		return 0, newErr(KindIO, "filemut: invalid whence %d", whence)
	}
	if newPos < 0 {
		return 0, newErr(KindInvalidPath, "filemut: negative seek position")
	}
	fm.cursor = newPos
	return newPos, nil
}

// Flush reconciles the buffered image to the stream: an empty buffer is a
// no-op; a buffer no larger than the entry's current extent is written in
// place; anything larger (including every write to a just-created
// placeholder entry, whose extent is always size 0) is appended at
// end-of-stream and the entry is repointed at it. The entry's
// (position, size) — and, unless disabled, modify_time — are then rewritten
// at the entry's own fixed stream offset.
func (fm *FileMut) Flush() error {
	fm.archive.locker.Lock()
	defer fm.archive.locker.Unlock()
	return fm.flushLocked()
}

func (fm *FileMut) flushLocked() error {
	if len(fm.buffered) == 0 {
		return nil
	}

	bc, ok := fm.archive.index.get(fm.chain)
	if !ok {
		return newErr(KindCorruptedFile, "flush: chain %v missing from index", fm.chain)
	}
	e := bc.entry(fm.blockIdx, fm.entryIdx)
	oldPos, oldSize, isFile := e.fileData()
	if !isFile {
		return newErr(KindExpectedFile, "flush: entry is not a file")
	}

	newLen := uint32(len(fm.buffered))
	var newPos StreamOffset
	if newLen > oldSize {
		pos, err := writeFileData(fm.archive.stream, fm.buffered)
		if err != nil {
			return err
		}
		newPos = pos
	} else {
		if err := overwriteFileData(fm.archive.stream, oldPos, fm.buffered); err != nil {
			return err
		}
		newPos = oldPos
	}

	e.setFileData(newPos, newLen)
	if fm.autoTouchMTime && !fm.skipAutoTouch {
		e.modifyTime = filetimeNow()
	}
	bc.setEntry(fm.blockIdx, fm.entryIdx, e)
	return fm.archive.rewriteEntry(bc, fm.blockIdx, fm.entryIdx)
}

// CopyTimesFrom copies a source file's access/modify timestamps onto this
// handle's entry, overriding whatever Flush would otherwise set. Useful when
// repacking an archive and wanting the new entries to keep their original
// timestamps instead of "now".
func (fm *FileMut) CopyTimesFrom(src *File) {
	fm.archive.locker.Lock()
	defer fm.archive.locker.Unlock()

	bc, ok := fm.archive.index.get(fm.chain)
	if !ok {
		return
	}
	e := bc.entry(fm.blockIdx, fm.entryIdx)
	e.accessTime = src.access
	e.modifyTime = src.modify
	bc.setEntry(fm.blockIdx, fm.entryIdx, e)
	fm.skipAutoTouch = true
}

// Close flushes the handle, discarding any error, mirroring the reference
// implementation's best-effort destructor. Call Flush directly if the
// result of the reconciliation matters to the caller.
func (fm *FileMut) Close() error {
	_ = fm.flushLockedSilently()
	return nil
}

func (fm *FileMut) flushLockedSilently() error {
	fm.archive.locker.Lock()
	defer fm.archive.locker.Unlock()
	return fm.flushLocked()
}
