package pk2

import (
	"io"
	"time"
)

// File is a read-only handle to a file's data. It implements io.Reader and
// io.Seeker over the archive's stream.
type File struct {
	archive *Archive
	name    string
	pos     StreamOffset // on-disk start of this file's data extent
	size    uint32
	access  filetime
	modify  filetime
	cursor  int64
}

// Name returns the file's entry name (not a full path).
func (f *File) Name() string { return f.name }

// Size returns the file's length in bytes, as recorded in its entry.
func (f *File) Size() uint32 { return f.size }

// ModifyTime returns the entry's modify_time, or false if it underflows the
// Unix epoch (see filetime.Time).
func (f *File) ModifyTime() (time.Time, bool) { return f.modify.Time() }

// AccessTime returns the entry's access_time, or false if it underflows the
// Unix epoch.
func (f *File) AccessTime() (time.Time, bool) { return f.access.Time() }

func (f *File) Read(p []byte) (int, error) {
	f.archive.locker.Lock()
	defer f.archive.locker.Unlock()

	if f.cursor >= int64(f.size) {
		return 0, io.EOF
	}
	remaining := int64(f.size) - f.cursor
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}
	data, err := readFileDataAt(f.archive.stream, f.pos.Add(uint64(f.cursor)), uint32(len(p)))
	if err != nil {
		return 0, err
	}
	n := copy(p, data)
	f.cursor += int64(n)
	return n, nil
}

func (f *File) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = f.cursor + offset
	case io.SeekEnd:
		newPos = int64(f.size) + offset
	default:
		return 0, newErr(KindIO, "file: invalid whence %d", whence)
	}
	if newPos < 0 {
		return 0, newErr(KindInvalidPath, "file: negative seek position")
	}
	f.cursor = newPos
	return newPos, nil
}

// ReadAll reads the file's entire contents in one call.
func (f *File) ReadAll() ([]byte, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, f.size)
	if _, err := io.ReadFull(f, buf); err != nil && err != io.EOF {
		return nil, err
	}
	return buf, nil
}
