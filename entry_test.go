package pk2

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntryRoundTripEmpty(t *testing.T) {
	r := require.New(t)

	e := newEmptyEntry(BlockOffset(5000))
	buf := make([]byte, entrySize)
	e.writeTo(buf)

	got, err := parseEntry(buf)
	r.NoError(err)
	r.True(got.isEmpty())
	r.Equal(BlockOffset(5000), got.nextBlock)
}

func TestEntryRoundTripDirectory(t *testing.T) {
	r := require.New(t)

	e := newDirectoryEntry("SubDir", ChainOffset(3072), BlockOffset(7680))
	buf := make([]byte, entrySize)
	e.writeTo(buf)

	got, err := parseEntry(buf)
	r.NoError(err)
	r.True(got.isDirectory())
	r.Equal("SubDir", got.name)
	children, ok := got.childrenOffset()
	r.True(ok)
	r.Equal(ChainOffset(3072), children)
	r.Equal(BlockOffset(7680), got.nextBlock)
}

func TestEntryRoundTripFile(t *testing.T) {
	r := require.New(t)

	e := newFileEntry("File.TXT", StreamOffset(9000), 1234, 0)
	buf := make([]byte, entrySize)
	e.writeTo(buf)

	got, err := parseEntry(buf)
	r.NoError(err)
	r.True(got.isFile())
	pos, size, ok := got.fileData()
	r.True(ok)
	r.Equal(StreamOffset(9000), pos)
	r.EqualValues(1234, size)
}

func TestEntryNameTruncatedToFit(t *testing.T) {
	r := require.New(t)

	longName := make([]byte, 200)
	for i := range longName {
		longName[i] = 'a'
	}
	e := newFileEntry(string(longName), StreamOffset(1), 1, 0)
	buf := make([]byte, entrySize)
	e.writeTo(buf)

	got, err := parseEntry(buf)
	r.NoError(err)
	r.LessOrEqual(len(got.name), maxNameLen)
}

func TestEntryZeroPositionIsCorrupted(t *testing.T) {
	r := require.New(t)

	e := newFileEntry("f", 0, 0, 0)
	// force position to 0 to simulate corruption: newFileEntry with
	// StreamOffset(0) already does this, which is exactly the case the
	// parser must reject.
	buf := make([]byte, entrySize)
	e.writeTo(buf)

	_, err := parseEntry(buf)
	r.True(IsCorruptedFile(err))
}

func TestEntryNameEqualFoldASCIIOnly(t *testing.T) {
	r := require.New(t)

	e := newFileEntry("File.TXT", StreamOffset(1), 1, 0)
	r.True(e.nameEqualFold("file.txt"))
	r.True(e.nameEqualFold("FILE.TXT"))
	r.False(e.nameEqualFold("file.tx"))
}

func TestEntryClearPreservesNextBlock(t *testing.T) {
	r := require.New(t)

	e := newFileEntry("f", StreamOffset(1), 1, BlockOffset(42))
	e.clear()
	r.True(e.isEmpty())
	r.Equal(BlockOffset(42), e.nextBlock)
}
