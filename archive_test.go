package pk2

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, a *Archive, path string, data []byte) {
	t.Helper()
	fm, err := a.CreateFileHandle(path)
	require.NoError(t, err)
	if len(data) > 0 {
		_, err = fm.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, fm.Flush())
}

func readFile(t *testing.T, a *Archive, path string) []byte {
	t.Helper()
	f, err := a.OpenFileHandle(path)
	require.NoError(t, err)
	data, err := f.ReadAll()
	require.NoError(t, err)
	return data
}

// Scenario 1: create_new_in_memory("test") header bytes.
func TestCreateInMemoryHeaderBytes(t *testing.T) {
	r := require.New(t)

	a, err := CreateInMemory("test")
	r.NoError(err)

	data := a.Bytes()
	r.GreaterOrEqual(len(data), 2816)
	r.Equal(pk2Signature[:], data[0:30])
	r.Equal([]byte{0x02, 0x00, 0x00, 0x01}, data[30:34])
	r.Equal(byte(1), data[34])
}

// Scenario 2: round trip through serialize/reopen.
func TestRoundTrip(t *testing.T) {
	r := require.New(t)

	a, err := CreateInMemory("roundtrip_key")
	r.NoError(err)

	writeFile(t, a, "/root.txt", []byte("Root file"))
	writeFile(t, a, "/dir/nested.txt", []byte("Nested file"))

	reopened, err := OpenInMemory(a.Bytes(), "roundtrip_key")
	r.NoError(err)

	r.Equal([]byte("Root file"), readFile(t, reopened, "/root.txt"))
	r.Equal([]byte("Nested file"), readFile(t, reopened, "/dir/nested.txt"))
}

// Scenario 3: partial overwrite stays in place because new_len <= old_size.
func TestPartialOverwriteInPlace(t *testing.T) {
	r := require.New(t)

	a, err := CreateInMemory("")
	r.NoError(err)

	writeFile(t, a, "/t", []byte("This is a long string"))

	fm, err := a.OpenFileMut("/t")
	r.NoError(err)
	_, err = fm.Write([]byte("Short"))
	r.NoError(err)
	r.NoError(fm.Flush())

	r.Equal([]byte("Shortis a long string"), readFile(t, a, "/t"))
}

// Scenario 4: growing past the old extent appends instead.
func TestGrowCausesAppend(t *testing.T) {
	r := require.New(t)

	a, err := CreateInMemory("")
	r.NoError(err)

	writeFile(t, a, "/t", []byte("Short"))
	before := len(a.Bytes())

	fm, err := a.OpenFileMut("/t")
	r.NoError(err)
	_, err = fm.Seek(0, io.SeekEnd)
	r.NoError(err)
	_, err = fm.Write([]byte(" Extended content"))
	r.NoError(err)
	r.NoError(fm.Flush())

	r.Equal([]byte("Short Extended content"), readFile(t, a, "/t"))
	r.GreaterOrEqual(len(a.Bytes())-before, 22)
}

// Scenario 5: case-insensitive lookup.
func TestCaseInsensitiveLookup(t *testing.T) {
	r := require.New(t)

	a, err := CreateInMemory("")
	r.NoError(err)

	writeFile(t, a, "/SubDir/File.TXT", []byte("content"))

	data1 := readFile(t, a, "/subdir/file.txt")
	data2 := readFile(t, a, "/SUBDIR/FILE.TXT")
	r.Equal([]byte("content"), data1)
	r.Equal([]byte("content"), data2)
}

// Scenario 6: directory iteration excludes "." and "..".
func TestDirectoryIterationExcludesMetadataLinks(t *testing.T) {
	r := require.New(t)

	a, err := CreateInMemory("")
	r.NoError(err)

	writeFile(t, a, "/a/b/c/deep.txt", []byte("x"))

	dir, err := a.OpenDirectory("/a/b/c")
	r.NoError(err)
	entries, err := dir.Entries()
	r.NoError(err)
	r.Len(entries, 1)
	r.Equal("deep.txt", entries[0].Name)
	r.False(entries[0].IsDir)
}

// P4: delete_file makes the path NotFound while leaving siblings intact.
func TestDeleteFile(t *testing.T) {
	r := require.New(t)

	a, err := CreateInMemory("")
	r.NoError(err)

	writeFile(t, a, "/keep.txt", []byte("keep"))
	writeFile(t, a, "/gone.txt", []byte("gone"))

	r.NoError(a.DeleteFile("/gone.txt"))

	_, err = a.OpenFileHandle("/gone.txt")
	r.True(IsNotFound(err))

	r.Equal([]byte("keep"), readFile(t, a, "/keep.txt"))
}

// P7: seeking past end-of-file is accepted; reads past it return EOF.
func TestSeekPastEndOfFile(t *testing.T) {
	r := require.New(t)

	a, err := CreateInMemory("")
	r.NoError(err)
	writeFile(t, a, "/t", []byte("hi"))

	f, err := a.OpenFileHandle("/t")
	r.NoError(err)

	pos, err := f.Seek(100, io.SeekStart)
	r.NoError(err)
	r.EqualValues(100, pos)

	buf := make([]byte, 4)
	n, err := f.Read(buf)
	r.Equal(0, n)
	r.Equal(io.EOF, err)

	_, err = f.Seek(-1, io.SeekStart)
	r.True(IsInvalidPath(err))
}

// Creating a path that already exists fails with AlreadyExists.
func TestCreateFileAlreadyExists(t *testing.T) {
	r := require.New(t)

	a, err := CreateInMemory("")
	r.NoError(err)
	writeFile(t, a, "/dup.txt", []byte("x"))

	_, err = a.CreateFileHandle("/dup.txt")
	r.True(IsAlreadyExists(err))
}

// Many small files in the root force the root chain to allocate new blocks,
// exercising the block-linking path in create.go.
func TestManyFilesForcesNewBlocks(t *testing.T) {
	r := require.New(t)

	a, err := CreateInMemory("")
	r.NoError(err)

	const n = 50
	names := make([]string, n)
	for i := 0; i < n; i++ {
		name := "/file" + string(rune('a'+i%26)) + string(rune('0'+i/26)) + ".bin"
		names[i] = name
		writeFile(t, a, name, []byte{byte(i)})
	}
	for i, name := range names {
		data := readFile(t, a, name)
		r.Equal([]byte{byte(i)}, data)
	}
}

// A directory whose chain spans more than one block, with a sibling
// directory discovered in the very same parent block right after it,
// interleaves the two chains' block reads in the chain-index builder's
// worklist on reopen. Every file in the multi-block directory must still be
// reachable afterward, and the sibling must come through unharmed too.
func TestReopenMultiBlockChainWithSibling(t *testing.T) {
	r := require.New(t)

	a, err := CreateInMemory("")
	r.NoError(err)

	const bigCount = 20
	for i := 0; i < bigCount; i++ {
		writeFile(t, a, fmt.Sprintf("/big/f%02d.bin", i), []byte{byte(i)})
	}
	writeFile(t, a, "/small/only.bin", []byte("s"))

	reopened, err := OpenInMemory(a.Bytes(), "")
	r.NoError(err)

	for i := 0; i < bigCount; i++ {
		data := readFile(t, reopened, fmt.Sprintf("/big/f%02d.bin", i))
		r.Equal([]byte{byte(i)}, data)
	}
	r.Equal([]byte("s"), readFile(t, reopened, "/small/only.bin"))

	bigDir, err := reopened.OpenDirectory("/big")
	r.NoError(err)
	entries, err := bigDir.Files()
	r.NoError(err)
	r.Len(entries, bigCount)
}
