package pk2

// blockChain is the in-memory form of a chain of linked blocks: a directory's
// (or the root's) full entry list, together with the stream offset each
// block was read from so entries can be written back in place and new
// blocks can be linked on to the tail.
type blockChain struct {
	offsets []BlockOffset // offsets[i] is where blocks[i] lives in the stream
	blocks  []block
}

func newBlockChain(offset BlockOffset, b block) blockChain {
	return blockChain{offsets: []BlockOffset{offset}, blocks: []block{b}}
}

// chainOffset identifies this chain by the offset of its first block, which
// is how directory entries and the chain index both address it.
func (bc blockChain) chainOffset() ChainOffset {
	return bc.offsets[0].AsChainOffset()
}

func (bc blockChain) numBlocks() int { return len(bc.blocks) }

func (bc blockChain) entry(blockIdx, entryIdx int) entry {
	return bc.blocks[blockIdx][entryIdx]
}

func (bc *blockChain) setEntry(blockIdx, entryIdx int, e entry) {
	bc.blocks[blockIdx][entryIdx] = e
}

// streamOffsetForEntry returns the byte position in the archive stream at
// which the given entry slot is encoded, for writing a single updated entry
// back without rewriting the whole block.
func (bc blockChain) streamOffsetForEntry(blockIdx, entryIdx int) StreamOffset {
	return bc.offsets[blockIdx].AsStreamOffset().Add(uint64(entryIdx) * entrySize)
}

// blockStreamOffset returns where the blockIdx'th block of the chain lives.
func (bc blockChain) blockStreamOffset(blockIdx int) StreamOffset {
	return bc.offsets[blockIdx].AsStreamOffset()
}

// forEach visits every non-empty entry in the chain in on-disk order.
func (bc blockChain) forEach(f func(blockIdx, entryIdx int, e entry) bool) {
	for bi, b := range bc.blocks {
		for ei, e := range b {
			if e.isEmpty() {
				continue
			}
			if !f(bi, ei, e) {
				return
			}
		}
	}
}

// findByName looks for a non-empty entry whose name matches name under
// ASCII case folding, returning its position and the entry itself.
func (bc blockChain) findByName(name string) (blockIdx, entryIdx int, e entry, found bool) {
	for bi, b := range bc.blocks {
		for ei, cand := range b {
			if cand.nameEqualFold(name) {
				return bi, ei, cand, true
			}
		}
	}
	return 0, 0, entry{}, false
}

// findFree returns the first empty, reusable slot in the chain.
func (bc blockChain) findFree() (blockIdx, entryIdx int, ok bool) {
	for bi, b := range bc.blocks {
		if idx := b.findEmpty(); idx >= 0 {
			return bi, idx, true
		}
	}
	return 0, 0, false
}

// pushAndLink appends a freshly allocated block at newOffset to the chain,
// linking the current tail block's last (now non-terminal) slot to it. The
// caller is responsible for persisting both the relinked tail block and the
// new block to the stream.
func (bc *blockChain) pushAndLink(newOffset BlockOffset) (tailBlockIdx int, newBlock block) {
	tailBlockIdx = len(bc.blocks) - 1
	tail := &bc.blocks[tailBlockIdx]
	tail[entriesPerBlock-1].nextBlock = newOffset

	nb := emptyBlock(0)
	bc.blocks = append(bc.blocks, nb)
	bc.offsets = append(bc.offsets, newOffset)
	return tailBlockIdx, nb
}
