package pk2

// StreamOffset is a byte offset into the archive's backing stream. Zero
// means "no offset" — every valid offset in an archive is non-zero because
// the 256-byte header occupies the very first bytes of the stream.
type StreamOffset uint64

// BlockOffset is the StreamOffset of the first byte of a 2560-byte
// directory block. Zero means "no block" (e.g. a terminal next_block link).
type BlockOffset uint64

// ChainOffset identifies a block chain: it is numerically equal to the
// BlockOffset of the chain's first block, but kept as a distinct type so the
// two addressing intents can't be mixed up by accident.
type ChainOffset uint64

// IsZero reports whether the offset is the reserved "none" value.
func (o StreamOffset) IsZero() bool { return o == 0 }

// IsZero reports whether the offset is the reserved "none" value.
func (o BlockOffset) IsZero() bool { return o == 0 }

// IsZero reports whether the offset is the reserved "none" value.
func (o ChainOffset) IsZero() bool { return o == 0 }

// AsBlockOffset widens a chain offset to a block offset: a chain's identity
// is the offset of its first block.
func (o ChainOffset) AsBlockOffset() BlockOffset { return BlockOffset(o) }

// AsChainOffset narrows a block offset into the chain offset it would be the
// head of. Only meaningful when the block in question is known to be the
// first block of some chain.
func (o BlockOffset) AsChainOffset() ChainOffset { return ChainOffset(o) }

// AsStreamOffset widens a block offset to a plain stream offset.
func (o BlockOffset) AsStreamOffset() StreamOffset { return StreamOffset(o) }

// Add returns the stream offset n bytes past o.
func (o StreamOffset) Add(n uint64) StreamOffset { return o + StreamOffset(n) }
