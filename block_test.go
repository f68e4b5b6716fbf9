package pk2

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockRoundTrip(t *testing.T) {
	r := require.New(t)

	b := emptyBlock(BlockOffset(2560))
	b[0] = newFileEntry("a.txt", StreamOffset(256), 10, b[0].nextBlock)
	b[1] = newDirectoryEntry("sub", ChainOffset(5120), b[1].nextBlock)

	buf := make([]byte, blockLen)
	b.writeTo(buf)

	got, err := parseBlock(buf)
	r.NoError(err)
	r.Equal(b, got)
}

func TestBlockFindEmpty(t *testing.T) {
	r := require.New(t)

	b := emptyBlock(0)
	idx := b.findEmpty()
	r.Equal(0, idx)

	for i := 0; i < entriesPerBlock; i++ {
		b[i] = newFileEntry("f", StreamOffset(uint64(i)+1), 1, 0)
	}
	r.Equal(-1, b.findEmpty())
}

func TestBlockLastSlotReusableWhenLinked(t *testing.T) {
	r := require.New(t)

	b := emptyBlock(BlockOffset(99999))
	for i := 0; i < entriesPerBlock-1; i++ {
		b[i] = newFileEntry("f", StreamOffset(uint64(i)+1), 1, 0)
	}
	// entry 19 is empty but carries a next_block link: it is still a
	// reusable slot, and the link itself is unaffected by what occupies it.
	r.Equal(entriesPerBlock-1, b.findEmpty())
	r.Equal(BlockOffset(99999), b.nextBlockOffset())

	b[entriesPerBlock-1] = newFileEntry("tail.bin", StreamOffset(500), 2, b[entriesPerBlock-1].nextBlock)
	r.Equal(-1, b.findEmpty())
	r.Equal(BlockOffset(99999), b.nextBlockOffset())
}
