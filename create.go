package pk2

// CreateFileHandle implements the create-file algorithm: it walks path from
// the root, creating whatever intermediate directories are missing, then
// stores a placeholder file entry at the final component and returns a
// mutable handle positioned at it, ready to be written and flushed.
//
// Grounded on the reference archive facade's create_entry_at: resolve as far
// as possible, allocate blocks/chains for whatever doesn't exist yet, then
// place the terminal entry.
func (a *Archive) CreateFileHandle(path string) (*FileMut, error) {
	a.locker.Lock()
	defer a.locker.Unlock()

	reached, rest, fullyExists, err := validateUntil(a.index, rootChainOffset, path)
	if err != nil {
		return nil, err
	}
	if fullyExists {
		return nil, newErr(KindAlreadyExists, "create %q: already exists", path)
	}

	current := reached
	for i, name := range rest {
		isLast := i == len(rest)-1

		bc, ok := a.index.get(current)
		if !ok {
			return nil, newErr(KindCorruptedFile, "create: chain %v missing from index", current)
		}

		blockIdx, entryIdx, ok := bc.findFree()
		if !ok {
			newOffset, err := a.allocateBlockOffset()
			if err != nil {
				return nil, err
			}
			tailIdx, newBlock := bc.pushAndLink(newOffset)
			if err := writeBlockAt(a.stream, a.cipher, newOffset, newBlock); err != nil {
				return nil, err
			}
			if err := a.rewriteEntry(bc, tailIdx, entriesPerBlock-1); err != nil {
				return nil, err
			}
			blockIdx, entryIdx = len(bc.blocks)-1, 0
		}

		// The found slot may be a block's last entry, which doubles as the
		// chain's link to its next block regardless of its own content;
		// preserve whatever it already points to so reusing a freed slot
		// there never severs the chain.
		priorNext := bc.entry(blockIdx, entryIdx).nextBlock

		if !isLast {
			childChain, err := a.allocateDirectoryChain(current)
			if err != nil {
				return nil, err
			}
			e := newDirectoryEntry(name, childChain, priorNext)
			bc.setEntry(blockIdx, entryIdx, e)
			if err := a.rewriteEntry(bc, blockIdx, entryIdx); err != nil {
				return nil, err
			}
			current = childChain
			continue
		}

		// Placeholder: position is overwritten on first flush, and is never
		// read back while size is 0, so the root chain offset is a safe
		// stand-in value.
		e := newFileEntry(name, rootChainOffset.AsBlockOffset().AsStreamOffset(), 0, priorNext)
		bc.setEntry(blockIdx, entryIdx, e)
		if err := a.rewriteEntry(bc, blockIdx, entryIdx); err != nil {
			return nil, err
		}
		return &FileMut{
			archive: a, chain: current, blockIdx: blockIdx, entryIdx: entryIdx,
			autoTouchMTime: a.autoTouchMTime,
		}, nil
	}

	// Unreachable: validateUntil only reports !fullyExists with a non-empty
	// rest, and the loop above always returns once it processes the final
	// component.
	return nil, newErr(KindInvalidPath, "create %q: nothing to create", path)
}

// allocateBlockOffset reserves the stream offset for a brand-new block by
// measuring the current stream length; the caller writes the block's bytes
// there immediately afterward.
func (a *Archive) allocateBlockOffset() (BlockOffset, error) {
	n, err := streamLen(a.stream)
	if err != nil {
		return 0, err
	}
	return BlockOffset(n), nil
}

// allocateDirectoryChain creates a brand new one-block chain at end of
// stream whose first two entries are the mandatory "." (self) and ".."
// (parent) links, and records it in the chain index.
func (a *Archive) allocateDirectoryChain(parent ChainOffset) (ChainOffset, error) {
	offset, err := a.allocateBlockOffset()
	if err != nil {
		return 0, err
	}
	chainOffset := offset.AsChainOffset()

	b := emptyBlock(0)
	b[0] = newDirectoryEntry(".", chainOffset, 0)
	b[1] = newDirectoryEntry("..", parent, 0)

	if err := writeBlockAt(a.stream, a.cipher, offset, b); err != nil {
		return 0, err
	}
	a.index.insert(newBlockChainPtr(offset, b))
	return chainOffset, nil
}

func newBlockChainPtr(offset BlockOffset, b block) *blockChain {
	bc := newBlockChain(offset, b)
	return &bc
}

// rewriteEntry persists the current in-memory value of a single entry slot
// back to the stream at its precise byte offset.
func (a *Archive) rewriteEntry(bc *blockChain, blockIdx, entryIdx int) error {
	off := bc.streamOffsetForEntry(blockIdx, entryIdx)
	return writeEntryAt(a.stream, a.cipher, off, bc.entry(blockIdx, entryIdx))
}
