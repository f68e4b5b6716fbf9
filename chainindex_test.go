package pk2

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// This reproduces the exact interleave the worklist can produce: a
// multi-block chain (A) discovered alongside a single-block sibling (B) in
// the same parent block. A's continuation request and B's first request end
// up adjacent in the FIFO worklist, so B's block is read before A's second
// block arrives. The parser must still assemble A's two blocks under A's own
// identity, and must never insert a second, bogus chain keyed by A's
// continuation block's own offset.
func TestChainIndexParserHandlesInterleavedChains(t *testing.T) {
	r := require.New(t)

	rootOffset := ChainOffset(256)
	aOffset := BlockOffset(5000)
	a2Offset := BlockOffset(6000)
	bOffset := BlockOffset(7000)

	root := emptyBlock(0)
	root[0] = newDirectoryEntry(".", rootOffset, 0)
	root[1] = newDirectoryEntry("A", aOffset.AsChainOffset(), 0)
	root[2] = newDirectoryEntry("B", bOffset.AsChainOffset(), 0)

	aBlock1 := emptyBlock(a2Offset)
	aBlock1[0] = newDirectoryEntry(".", aOffset.AsChainOffset(), 0)
	aBlock1[1] = newDirectoryEntry("..", rootOffset, 0)

	aBlock2 := emptyBlock(0)
	aBlock2[0] = newFileEntry("leaf.bin", StreamOffset(999), 3, 0)

	bBlock := emptyBlock(0)
	bBlock[0] = newDirectoryEntry(".", bOffset.AsChainOffset(), 0)
	bBlock[1] = newDirectoryEntry("..", rootOffset, 0)

	p := newChainIndexParser(rootOffset)

	req, ok := p.wantsReadAt()
	r.True(ok)
	r.Equal(rootOffset.AsBlockOffset(), req.offset)
	r.NoError(p.progress(root))

	// Root's children are discovered in slot order, so A's first block is
	// requested before B's.
	req, ok = p.wantsReadAt()
	r.True(ok)
	r.Equal(aOffset, req.offset)
	r.NoError(p.progress(aBlock1))

	// A's continuation request now sits behind B's discovery request in the
	// FIFO worklist, so B comes up next.
	req, ok = p.wantsReadAt()
	r.True(ok)
	r.Equal(bOffset, req.offset)
	r.NoError(p.progress(bBlock))

	req, ok = p.wantsReadAt()
	r.True(ok)
	r.Equal(a2Offset, req.offset)
	r.NoError(p.progress(aBlock2))

	_, ok = p.wantsReadAt()
	r.False(ok)

	index, done := p.finish()
	r.True(done)

	aChain, ok := index.get(aOffset.AsChainOffset())
	r.True(ok)
	r.Equal(2, aChain.numBlocks())
	blockIdx, entryIdx, e, found := aChain.findByName("leaf.bin")
	r.True(found)
	r.Equal(1, blockIdx)
	r.Equal(0, entryIdx)
	r.True(e.isFile())

	// No bogus chain keyed under A's continuation block's own offset.
	_, bogus := index.get(a2Offset.AsChainOffset())
	r.False(bogus)

	bChain, ok := index.get(bOffset.AsChainOffset())
	r.True(ok)
	r.Equal(1, bChain.numBlocks())
}
